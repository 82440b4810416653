package notification

import (
	"context"

	"sftails/models"
)

// Dispatcher delivers booking lifecycle events to clients. Delivery is
// fire-and-forget from the coordinator's point of view: a failed enqueue is
// logged by the caller and never fails the reservation operation.
type Dispatcher interface {
	Notify(ctx context.Context, event, recipientEmail, recipientName string, booking models.BookingSnapshot) error
}
