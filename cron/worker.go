package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"sftails/config"
	"sftails/models"
	"sftails/services/notification"
	"sftails/services/tasks"

	"github.com/hibiken/asynq"
)

// InitBookingEventWorker runs the async email worker in background.
func InitBookingEventWorker(sender *notification.EmailSender) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingEvent, handleBookingEventTask(sender))

	// Start async worker with retry logic
	go func() {
		log.Println("[BookingEventWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[BookingEventWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[BookingEventWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleBookingEventTask(sender *notification.EmailSender) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.BookingEventPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[BookingEventWorker] invalid payload: %v", err)
			return err
		}

		log.Printf("[BookingEventWorker] sending %q mail for booking %s to %s", p.Event, p.Booking.BookingID, p.RecipientEmail)

		if err := sender.SendBookingEvent(p); err != nil {
			log.Printf("[BookingEventWorker] failed to send booking email: %v", err)
			return err
		}
		return nil
	}
}
