package reservation

import (
	"context"
	"fmt"
	"time"

	"sftails/models"
	"sftails/services/identity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBooking validates the request, persists a new pending booking, and
// queues the "submitted" notification. No availability or slot-collision
// check is performed; conflicting requests are resolved by staff when they
// accept or reject.
func (s *DefaultReservationService) CreateBooking(ctx context.Context, clientID string, input models.BookingInput) (*models.Booking, error) {
	if err := validateBookingInput(input); err != nil {
		return nil, err
	}

	client, err := s.ClientRepo.GetByID(clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve client: %w", err)
	}
	if client == nil {
		return nil, newValidationError("clientId", "unknown client")
	}

	if input.PetID != "" {
		pet, err := s.PetRepo.GetByID(input.PetID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve pet: %w", err)
		}
		if pet == nil || pet.ClientID != clientID {
			return nil, newValidationError("petId", "pet not found or not owned by client")
		}
	}

	booking := &models.Booking{
		ID:                  uuid.New().String(),
		ClientID:            clientID,
		PetID:               input.PetID,
		ServiceType:         input.ServiceType,
		Date:                input.Date,
		Time:                input.Time,
		SpecialInstructions: input.SpecialInstructions,
		Status:              models.BookingStatusPending,
		CreatedAt:           time.Now(),
	}

	if err := s.BookingRepo.CreateBooking(booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.Logger.Info("booking created",
		zap.String("booking", booking.ID),
		zap.String("client", clientID),
		zap.String("service", booking.ServiceType))

	s.notify(ctx, models.EventBookingSubmitted, client, booking)

	return booking, nil
}

// AcceptBooking applies the pending -> confirmed transition. The caller's
// role must be staff or admin; clients never confirm their own bookings.
func (s *DefaultReservationService) AcceptBooking(ctx context.Context, bookingID string, caller identity.Principal) (*models.Booking, error) {
	return s.transition(ctx, bookingID, caller, models.BookingStatusConfirmed)
}

// RejectBooking applies the pending -> cancelled transition under the same
// rules as AcceptBooking.
func (s *DefaultReservationService) RejectBooking(ctx context.Context, bookingID string, caller identity.Principal) (*models.Booking, error) {
	return s.transition(ctx, bookingID, caller, models.BookingStatusCancelled)
}

func (s *DefaultReservationService) transition(ctx context.Context, bookingID string, caller identity.Principal, next string) (*models.Booking, error) {
	if caller.Role != models.RoleStaff && caller.Role != models.RoleAdmin {
		return nil, &AuthorizationError{Role: caller.Role}
	}

	updated, err := s.BookingRepo.UpdateStatusIfPending(bookingID, next)
	if err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	if updated == nil {
		// No pending row matched: either the booking does not exist, or it
		// already left pending. The latter is a no-op success; a concurrent
		// caller won the transition and the row is returned as found.
		existing, err := s.BookingRepo.GetBookingByID(bookingID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch booking: %w", err)
		}
		if existing == nil {
			return nil, &BookingNotFoundError{BookingID: bookingID}
		}
		s.Logger.Info("booking already settled",
			zap.String("booking", bookingID),
			zap.String("status", existing.Status),
			zap.String("staff", caller.SubjectID))
		return existing, nil
	}

	s.Logger.Info("booking status updated",
		zap.String("booking", bookingID),
		zap.String("status", next),
		zap.String("staff", caller.SubjectID))

	if next == models.BookingStatusConfirmed {
		client, err := s.ClientRepo.GetByID(updated.ClientID)
		if err != nil || client == nil {
			s.Logger.Warn("could not resolve client for confirmation notification",
				zap.String("booking", bookingID), zap.Error(err))
		} else {
			s.notify(ctx, models.EventBookingConfirmed, client, updated)
		}
	}

	return updated, nil
}

// ListBookingsForClient returns all bookings owned by a client.
func (s *DefaultReservationService) ListBookingsForClient(ctx context.Context, clientID string) ([]models.Booking, error) {
	return s.BookingRepo.GetBookingsByClient(clientID)
}

// ListBookings returns bookings filtered by status; empty means all.
func (s *DefaultReservationService) ListBookings(ctx context.Context, status string) ([]models.Booking, error) {
	return s.BookingRepo.GetBookingsByStatus(status)
}

// notify queues a booking event. Failures are logged and swallowed; delivery
// never gates the reservation operation that triggered it.
func (s *DefaultReservationService) notify(ctx context.Context, event string, client *models.Client, booking *models.Booking) {
	snapshot := models.BookingSnapshot{
		BookingID:   booking.ID,
		ServiceType: booking.ServiceType,
		Date:        booking.Date,
		Time:        booking.Time,
		Status:      booking.Status,
	}
	if err := s.Notifier.Notify(ctx, event, client.Email, client.Name, snapshot); err != nil {
		s.Logger.Warn("failed to dispatch booking notification",
			zap.String("event", event),
			zap.String("booking", booking.ID),
			zap.Error(err))
	}
}

func validateBookingInput(input models.BookingInput) error {
	if !models.ValidServiceTypes[input.ServiceType] {
		return newValidationError("serviceType", fmt.Sprintf("unknown service type %q", input.ServiceType))
	}
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		return newValidationError("date", "expected YYYY-MM-DD")
	}
	if _, err := time.Parse("15:04", input.Time); err != nil {
		return newValidationError("time", "expected HH:MM")
	}
	return nil
}
