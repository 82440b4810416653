package bookingRepo

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

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	bookingColl *mongo.Collection
	paymentColl *mongo.Collection
}

// NewMongoBookingRepo creates a new BookingRepository backed by MongoDB.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	repo := &MongoBookingRepo{
		bookingColl: db.Collection("bookings"),
		paymentColl: db.Collection("payments"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create booking indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
// Payments are deliberately NOT unique per booking; duplicate settlement rows
// are an accepted gap.
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	bookingIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	if _, err := r.bookingColl.Indexes().CreateMany(ctx, bookingIndexes); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}

	paymentIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "booking_id", Value: 1}}},
	}
	if _, err := r.paymentColl.Indexes().CreateMany(ctx, paymentIndexes); err != nil {
		return fmt.Errorf("failed to create payment indexes: %w", err)
	}
	return nil
}

// CreateBooking inserts a new booking document.
func (r *MongoBookingRepo) CreateBooking(booking *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}

	if _, err := r.bookingColl.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetBookingByID retrieves a booking by its unique ID.
func (r *MongoBookingRepo) GetBookingByID(id string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.bookingColl.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &booking, nil
}

// GetBookingsByClient retrieves all bookings owned by a client, newest first.
func (r *MongoBookingRepo) GetBookingsByClient(clientID string) ([]models.Booking, error) {
	return r.findBookings(bson.M{"client_id": clientID})
}

// GetBookingsByStatus retrieves bookings in the given status.
func (r *MongoBookingRepo) GetBookingsByStatus(status string) ([]models.Booking, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return r.findBookings(filter)
}

func (r *MongoBookingRepo) findBookings(filter bson.M) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.bookingColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// UpdateStatusIfPending performs the compare-and-swap status transition. The
// filter pins the current status to "pending", so of two concurrent callers
// exactly one update applies; the loser simply matches no document.
func (r *MongoBookingRepo) UpdateStatusIfPending(id, next string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": models.BookingStatusPending}
	update := bson.M{"$set": bson.M{"status": next}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking models.Booking
	err := r.bookingColl.FindOneAndUpdate(ctx, filter, update, opts).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update status for booking %s: %w", id, err)
	}
	return &booking, nil
}

// DeleteBookingsByClient removes a client's bookings and their payments.
func (r *MongoBookingRepo) DeleteBookingsByClient(clientID string) error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	bookings, err := r.GetBookingsByClient(clientID)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
	}

	if len(ids) > 0 {
		if _, err := r.paymentColl.DeleteMany(ctx, bson.M{"booking_id": bson.M{"$in": ids}}); err != nil {
			return fmt.Errorf("failed to delete payments for client %s: %w", clientID, err)
		}
	}
	if _, err := r.bookingColl.DeleteMany(ctx, bson.M{"client_id": clientID}); err != nil {
		return fmt.Errorf("failed to delete bookings for client %s: %w", clientID, err)
	}
	return nil
}

// GetPaymentsByBooking retrieves all settlement records for a booking.
func (r *MongoBookingRepo) GetPaymentsByBooking(bookingID string) ([]models.Payment, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.paymentColl.Find(ctx, bson.M{"booking_id": bookingID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve payments for booking %s: %w", bookingID, err)
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	for cursor.Next(ctx) {
		var p models.Payment
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, nil
}
