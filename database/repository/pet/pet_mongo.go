package petRepo

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

// PetRepository defines methods for pet data access.
type PetRepository interface {
	GetByID(id string) (*models.Pet, error)
	GetByClient(clientID string) ([]models.Pet, error)
	Create(pet *models.Pet) error
	Update(pet *models.Pet) error
	Delete(id string) error
	DeleteByClient(clientID string) error
}

// MongoPetRepo implements PetRepository using MongoDB.
type MongoPetRepo struct {
	coll *mongo.Collection
}

// NewMongoPetRepo creates a new PetRepository backed by MongoDB.
func NewMongoPetRepo() PetRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("pets")
	repo := &MongoPetRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create pet indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoPetRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a pet by its unique ID.
func (r *MongoPetRepo) GetByID(id string) (*models.Pet, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var pet models.Pet
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&pet); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch pet with id %s: %w", id, err)
	}
	return &pet, nil
}

// GetByClient retrieves all pets owned by a client.
func (r *MongoPetRepo) GetByClient(clientID string) ([]models.Pet, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"client_id": clientID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve pets for client %s: %w", clientID, err)
	}
	defer cursor.Close(ctx)

	var pets []models.Pet
	for cursor.Next(ctx) {
		var p models.Pet
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode pet: %w", err)
		}
		pets = append(pets, p)
	}
	return pets, nil
}

// Create inserts a new pet document.
func (r *MongoPetRepo) Create(pet *models.Pet) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	pet.CreatedAt = now
	pet.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, pet); err != nil {
		return fmt.Errorf("failed to create pet: %w", err)
	}
	return nil
}

// Update modifies an existing pet document.
func (r *MongoPetRepo) Update(pet *models.Pet) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	pet.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": pet.ID}, bson.M{"$set": pet})
	if err != nil {
		return fmt.Errorf("failed to update pet with id %s: %w", pet.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("pet with id %s not found", pet.ID)
	}
	return nil
}

// Delete removes a pet document by its ID.
func (r *MongoPetRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete pet with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("pet with id %s not found", id)
	}
	return nil
}

// DeleteByClient removes all pets owned by a client.
func (r *MongoPetRepo) DeleteByClient(clientID string) error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"client_id": clientID}); err != nil {
		return fmt.Errorf("failed to delete pets for client %s: %w", clientID, err)
	}
	return nil
}
