package reservation

import (
	"context"
	"fmt"
	"time"

	"sftails/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// currency is fixed; multi-currency is out of scope.
const currency = "usd"

// RequestPayment authorizes the amount with the gateway, tagging the
// authorization with the booking's correlation metadata, and hands the
// client secret back. The booking status is untouched; abandoning the flow
// here leaves a pending, unpaid booking and nothing reclaims it. Gateway
// failures propagate as-is and are never retried, since a retried
// authorization can place a duplicate hold.
func (s *DefaultReservationService) RequestPayment(ctx context.Context, bookingID string, amount int64) (*models.PaymentAuthorization, error) {
	if amount <= 0 {
		return nil, newValidationError("amount", "must be a positive amount in minor currency units")
	}

	booking, err := s.BookingRepo.GetBookingByID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if booking == nil {
		return nil, &BookingNotFoundError{BookingID: bookingID}
	}

	metadata := map[string]string{
		"booking_id":   booking.ID,
		"service_type": booking.ServiceType,
		"date":         booking.Date,
		"time":         booking.Time,
	}

	auth, err := s.Gateway.Authorize(ctx, amount, currency, metadata)
	if err != nil {
		return nil, err
	}

	record := models.PaymentAuthorization{
		BookingID:    booking.ID,
		IntentID:     auth.IntentID,
		ClientSecret: auth.ClientSecret,
		Amount:       amount,
		Currency:     currency,
	}

	if err := s.AuthStore.Save(ctx, record); err != nil {
		// The authorization itself succeeded; losing the record only means
		// the later settlement cannot be amount-checked.
		s.Logger.Warn("failed to save authorization record",
			zap.String("booking", bookingID), zap.Error(err))
	}

	s.Logger.Info("payment authorization issued",
		zap.String("booking", bookingID),
		zap.String("intent", auth.IntentID),
		zap.Int64("amount", amount))

	return &record, nil
}

// RecordPayment writes the settlement ledger row. Callers invoke this only
// after the gateway's own confirmation flow reported success; this is the
// durable commit point of the workflow. The recorded amount is reconciled
// against the live authorization record when one exists. Nothing deduplicates
// repeated submissions of the same confirmation; an idempotency token per
// gateway confirmation would close that gap.
func (s *DefaultReservationService) RecordPayment(ctx context.Context, bookingID string, amount int64, method string) (*models.Payment, error) {
	if amount <= 0 {
		return nil, newValidationError("amount", "must be a positive amount in minor currency units")
	}
	if method == "" {
		return nil, newValidationError("method", "payment method is required")
	}

	booking, err := s.BookingRepo.GetBookingByID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if booking == nil {
		return nil, &BookingNotFoundError{BookingID: bookingID}
	}

	authRecord, err := s.AuthStore.Get(ctx, bookingID)
	if err != nil {
		s.Logger.Warn("failed to read authorization record",
			zap.String("booking", bookingID), zap.Error(err))
	}
	switch {
	case authRecord != nil && authRecord.Amount != amount:
		return nil, &AmountMismatchError{
			BookingID:  bookingID,
			Authorized: authRecord.Amount,
			Recorded:   amount,
		}
	case authRecord == nil:
		s.Logger.Warn("recording settlement without a live authorization record",
			zap.String("booking", bookingID), zap.Int64("amount", amount))
	}

	payment := &models.Payment{
		ID:        uuid.New().String(),
		BookingID: bookingID,
		Method:    method,
		Amount:    amount,
		Status:    models.PaymentStatusCompleted,
		CreatedAt: time.Now(),
	}

	if err := s.BookingRepo.CreatePayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	s.Logger.Info("payment recorded",
		zap.String("booking", bookingID),
		zap.String("payment", payment.ID),
		zap.Int64("amount", amount),
		zap.String("method", method))

	return payment, nil
}

// ListPayments returns all settlement records for a booking.
func (s *DefaultReservationService) ListPayments(ctx context.Context, bookingID string) ([]models.Payment, error) {
	return s.BookingRepo.GetPaymentsByBooking(bookingID)
}
