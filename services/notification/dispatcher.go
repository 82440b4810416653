package notification

import (
	"context"
	"fmt"

	"sftails/config"
	"sftails/models"
	"sftails/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// AsynqDispatcher queues booking events onto Redis; the background worker in
// cron/ drains the queue and sends the actual emails.
type AsynqDispatcher struct {
	client *asynq.Client
	logger *zap.Logger
}

// NewAsynqDispatcher creates a Dispatcher backed by the configured Redis
// queue.
func NewAsynqDispatcher(logger *zap.Logger) *AsynqDispatcher {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	return &AsynqDispatcher{client: client, logger: logger}
}

// Notify enqueues one booking event for delivery.
func (d *AsynqDispatcher) Notify(ctx context.Context, event, recipientEmail, recipientName string, booking models.BookingSnapshot) error {
	payload := models.BookingEventPayload{
		Event:          event,
		RecipientEmail: recipientEmail,
		RecipientName:  recipientName,
		Booking:        booking,
	}

	task, err := tasks.NewBookingEventTask(payload)
	if err != nil {
		return fmt.Errorf("failed to build booking event task: %w", err)
	}

	info, err := d.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue booking event: %w", err)
	}

	d.logger.Debug("queued booking event",
		zap.String("event", event),
		zap.String("booking", booking.BookingID),
		zap.String("task", info.ID))
	return nil
}

// Close releases the underlying queue connection.
func (d *AsynqDispatcher) Close() error {
	return d.client.Close()
}
