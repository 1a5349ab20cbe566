package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TypeBookingComplete      = "booking:complete"
	TypeBookingExpirePending = "booking:expire-pending"
	lifecycleRetention       = 24 * time.Hour
	lifecycleMaxRetry        = 5
)

// BookingPayload is the body of every booking lifecycle task.
type BookingPayload struct {
	BookingID string `json:"bookingId"`
}

func newBookingTask(typename, bookingID string, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(BookingPayload{BookingID: bookingID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(typename, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.MaxRetry(lifecycleMaxRetry),
		// one task per booking and type
		asynq.TaskID(typename + ":" + bookingID),
		asynq.Retention(lifecycleRetention),
	}
	return task, opts, nil
}

// NewCompletionTask moves a confirmed booking to completed at fireAt.
func NewCompletionTask(bookingID string, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	return newBookingTask(TypeBookingComplete, bookingID, fireAt)
}

// NewExpiryTask cancels a still-pending booking at fireAt.
func NewExpiryTask(bookingID string, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	return newBookingTask(TypeBookingExpirePending, bookingID, fireAt)
}

// ParseBookingPayload decodes the body of a lifecycle task.
func ParseBookingPayload(task *asynq.Task) (BookingPayload, error) {
	var p BookingPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid booking task payload: %w", err)
	}
	if p.BookingID == "" {
		return p, fmt.Errorf("booking task payload has no bookingId")
	}
	return p, nil
}

// Enqueuer is the part of *asynq.Client the scheduler uses.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Scheduler queues booking lifecycle tasks on asynq.
type Scheduler struct {
	Client Enqueuer
}

func (s *Scheduler) ScheduleCompletion(ctx context.Context, bookingID string, at time.Time) error {
	task, opts, err := NewCompletionTask(bookingID, at)
	if err != nil {
		return err
	}
	return s.enqueue(ctx, task, opts)
}

func (s *Scheduler) ScheduleExpiry(ctx context.Context, bookingID string, at time.Time) error {
	task, opts, err := NewExpiryTask(bookingID, at)
	if err != nil {
		return err
	}
	return s.enqueue(ctx, task, opts)
}

func (s *Scheduler) enqueue(ctx context.Context, task *asynq.Task, opts []asynq.Option) error {
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
		return fmt.Errorf("failed to enqueue %s: %w", task.Type(), err)
	}
	return nil
}
