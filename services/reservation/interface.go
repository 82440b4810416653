package reservation

import (
	"context"

	bookingRepo "sftails/database/repository/booking"
	clientRepo "sftails/database/repository/client"
	petRepo "sftails/database/repository/pet"
	"sftails/models"
	"sftails/services/identity"
	"sftails/services/notification"
	"sftails/services/payment"

	"go.uber.org/zap"
)

// ReservationService orchestrates the booking/payment workflow and owns the
// booking status state machine. Authorization happens before any settlement
// row is written, and a settlement row always represents a gateway-confirmed
// outcome, never a mere intent.
type ReservationService interface {
	// CreateBooking creates a new pending booking for a client and emits a
	// "submitted" notification.
	CreateBooking(ctx context.Context, clientID string, input models.BookingInput) (*models.Booking, error)
	// RequestPayment authorizes an amount with the payment gateway for a
	// booking and returns the authorization with its client secret. The
	// booking status does not change.
	RequestPayment(ctx context.Context, bookingID string, amount int64) (*models.PaymentAuthorization, error)
	// RecordPayment writes the durable settlement record after the caller
	// has confirmed success with the gateway.
	RecordPayment(ctx context.Context, bookingID string, amount int64, method string) (*models.Payment, error)
	// AcceptBooking moves a pending booking to confirmed. Staff only.
	// Accepting a booking that already left pending is a no-op success
	// returning the row as found.
	AcceptBooking(ctx context.Context, bookingID string, caller identity.Principal) (*models.Booking, error)
	// RejectBooking moves a pending booking to cancelled. Staff only. Same
	// no-op semantics as AcceptBooking on non-pending rows.
	RejectBooking(ctx context.Context, bookingID string, caller identity.Principal) (*models.Booking, error)

	// ListBookingsForClient returns a client's bookings.
	ListBookingsForClient(ctx context.Context, clientID string) ([]models.Booking, error)
	// ListBookings returns bookings in the given status; empty means all.
	ListBookings(ctx context.Context, status string) ([]models.Booking, error)
	// ListPayments returns all settlement records for a booking.
	ListPayments(ctx context.Context, bookingID string) ([]models.Payment, error)
}

// DefaultReservationService is the production implementation.
type DefaultReservationService struct {
	BookingRepo bookingRepo.BookingRepository
	ClientRepo  clientRepo.ClientRepository
	PetRepo     petRepo.PetRepository
	Gateway     payment.Gateway
	Notifier    notification.Dispatcher
	AuthStore   AuthorizationStore
	Logger      *zap.Logger
}
