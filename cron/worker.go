package cron

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"trimly/config"
	bookingRepo "trimly/database/repository/booking"
	"trimly/models"
	"trimly/services/tasks"

	"github.com/hibiken/asynq"
)

// InitExpiryWorker runs the async worker that cancels bookings left PENDING
// past their confirmation window.
func InitExpiryWorker(repo bookingRepo.BookingRepository) {
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
	mux.HandleFunc(tasks.TypeBookingExpire, handleExpiryTask(repo))

	// Start async worker with retry logic
	go func() {
		log.Println("[ExpiryWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ExpiryWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ExpiryWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleExpiryTask(repo bookingRepo.BookingRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.ExpiryPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ExpiryHandler] Invalid payload: %v", err)
			return err
		}

		err := repo.UpdateStatus(ctx, p.BookingID, models.BookingPending, models.BookingCancelled)
		if errors.Is(err, bookingRepo.ErrStatusChanged) {
			// Confirmed or cancelled in the meantime; nothing to do.
			return nil
		}
		if err != nil {
			log.Printf("[ExpiryHandler] Failed to expire booking %s: %v", p.BookingID, err)
			return err
		}

		log.Printf("[ExpiryHandler] Cancelled unconfirmed booking %s", p.BookingID)
		return nil
	}
}
