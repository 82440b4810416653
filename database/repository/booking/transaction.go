package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"sftails/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreatePayment inserts a settlement record transactionally. The booking row
// is read inside the same transaction, so a payment can never land against a
// booking that does not exist.
func (r *MongoBookingRepo) CreatePayment(ctx context.Context, payment *models.Payment) error {
	client := r.paymentColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now()
	}

	txnFn := func(sc mongo.SessionContext) error {
		count, err := r.bookingColl.CountDocuments(sc, bson.M{"id": payment.BookingID})
		if err != nil {
			return fmt.Errorf("booking lookup failed: %w", err)
		}
		if count == 0 {
			return fmt.Errorf("booking %s not found", payment.BookingID)
		}

		if _, err := r.paymentColl.InsertOne(sc, payment); err != nil {
			return fmt.Errorf("insert payment failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("payment transaction failed: %w", err)
	}

	return nil
}
