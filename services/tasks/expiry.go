package tasks

import (
	"encoding/json"
	"time"

	"trimly/config"

	"github.com/hibiken/asynq"
)

const TypeBookingExpire = "booking:expire"

// ExpiryPayload is the task payload for a deferred booking auto-cancel.
type ExpiryPayload struct {
	BookingID string `json:"bookingId"`
}

func NewExpiryTask(bookingID string, in time.Duration) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(ExpiryPayload{BookingID: bookingID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingExpire, b)
	opts := []asynq.Option{asynq.ProcessIn(in)}

	return task, opts, nil
}

// AsynqExpiryScheduler enqueues expiry tasks on the booking queue.
type AsynqExpiryScheduler struct {
	Client *asynq.Client
}

func NewAsynqExpiryScheduler() *AsynqExpiryScheduler {
	return &AsynqExpiryScheduler{
		Client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		}),
	}
}

func (s *AsynqExpiryScheduler) ScheduleExpiry(bookingID string, in time.Duration) error {
	task, opts, err := NewExpiryTask(bookingID, in)
	if err != nil {
		return err
	}
	_, err = s.Client.Enqueue(task, opts...)
	return err
}
