package bookingRepo

import (
	"context"

	"sftails/models"
)

// BookingRepository defines data access for bookings and their payments.
type BookingRepository interface {
	// CreateBooking inserts a new booking record.
	CreateBooking(booking *models.Booking) error
	// GetBookingByID retrieves a booking, or (nil, nil) when it does not exist.
	GetBookingByID(id string) (*models.Booking, error)
	// GetBookingsByClient retrieves all bookings owned by a client.
	GetBookingsByClient(clientID string) ([]models.Booking, error)
	// GetBookingsByStatus retrieves bookings in the given status. An empty
	// status returns everything.
	GetBookingsByStatus(status string) ([]models.Booking, error)
	// UpdateStatusIfPending atomically moves a booking from "pending" to the
	// given status. It returns the updated booking, or (nil, nil) when no
	// pending row matched the id. A plain read-then-write is not equivalent;
	// concurrent confirms must resolve to exactly one applied transition.
	UpdateStatusIfPending(id, next string) (*models.Booking, error)
	// DeleteBookingsByClient removes all bookings (and their payments) owned
	// by a client. Used by the client-deletion cascade.
	DeleteBookingsByClient(clientID string) error

	// CreatePayment inserts a settlement record inside a transaction that
	// first verifies the referenced booking exists.
	CreatePayment(ctx context.Context, payment *models.Payment) error
	// GetPaymentsByBooking retrieves all settlement records for a booking.
	GetPaymentsByBooking(bookingID string) ([]models.Payment, error)
}
