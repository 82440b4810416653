package tasks

import (
	"encoding/json"

	"sftails/models"

	"github.com/hibiken/asynq"
)

// TypeBookingEvent is the queue task type for booking notification emails.
const TypeBookingEvent = "booking:event"

// NewBookingEventTask wraps a booking event payload for the queue.
func NewBookingEventTask(payload models.BookingEventPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBookingEvent, b), nil
}
