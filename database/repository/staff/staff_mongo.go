package staffRepo

import (
	"context"
	"fmt"
	"time"

	"sftails/database"
	"sftails/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StaffRepository defines methods for staff data access.
type StaffRepository interface {
	GetByID(id string) (*models.Staff, error)
	GetByEmail(email string) (*models.Staff, error)
	Create(staff *models.Staff) error
	Update(staff *models.Staff) error
	Delete(id string) error
}

// MongoStaffRepo implements StaffRepository using MongoDB.
type MongoStaffRepo struct {
	coll *mongo.Collection
}

// NewMongoStaffRepo creates a new StaffRepository backed by MongoDB.
func NewMongoStaffRepo() StaffRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("staff")
	repo := &MongoStaffRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create staff indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoStaffRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a staff member by its unique ID.
func (r *MongoStaffRepo) GetByID(id string) (*models.Staff, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var staff models.Staff
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&staff); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch staff with id %s: %w", id, err)
	}
	return &staff, nil
}

// GetByEmail retrieves a staff member by email address.
func (r *MongoStaffRepo) GetByEmail(email string) (*models.Staff, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var staff models.Staff
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&staff); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch staff with email %s: %w", email, err)
	}
	return &staff, nil
}

// Create inserts a new staff document.
func (r *MongoStaffRepo) Create(staff *models.Staff) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	staff.CreatedAt = now
	staff.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, staff); err != nil {
		return fmt.Errorf("failed to create staff: %w", err)
	}
	return nil
}

// Update modifies an existing staff document.
func (r *MongoStaffRepo) Update(staff *models.Staff) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	staff.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": staff.ID}, bson.M{"$set": staff})
	if err != nil {
		return fmt.Errorf("failed to update staff with id %s: %w", staff.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("staff with id %s not found", staff.ID)
	}
	return nil
}

// Delete removes a staff document by its ID.
func (r *MongoStaffRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete staff with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("staff with id %s not found", id)
	}
	return nil
}
