package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quickcourt/config"
	"quickcourt/models"
	"quickcourt/services/booking"
	"quickcourt/services/tasks"
	"quickcourt/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// BookingLifecycle is what the worker drives when lifecycle tasks fire.
type BookingLifecycle interface {
	Complete(ctx context.Context, bookingID string) (*models.Booking, error)
	ExpirePending(ctx context.Context, bookingID string) error
}

// QueueRedisOpt is the asynq connection shared by the client and the worker.
func QueueRedisOpt(cfg config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}
}

// NewMux routes lifecycle task types to their handlers.
func NewMux(svc BookingLifecycle) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingComplete, handleCompleteTask(svc))
	mux.HandleFunc(tasks.TypeBookingExpirePending, handleExpireTask(svc))
	return mux
}

// InitBookingWorker starts the asynq worker in the background. The returned
// server must be shut down by the caller.
func InitBookingWorker(ctx context.Context, cfg config.Config, svc BookingLifecycle) *asynq.Server {
	srv := asynq.NewServer(
		QueueRedisOpt(cfg),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: zapAsynqLogger{utils.GetLogger().Sugar()},
		},
	)
	mux := NewMux(svc)

	go monitorRedisConnection(ctx, cfg)

	go func() {
		logger := utils.GetLogger()
		logger.Info("[BookingWorker] starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Error("[BookingWorker] failed to start worker",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("[BookingWorker] giving up, lifecycle tasks will not run")
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempts*2) * time.Second):
			}
		}
	}()
	return srv
}

func handleCompleteTask(svc BookingLifecycle) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseBookingPayload(task)
		if err != nil {
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		if _, err := svc.Complete(ctx, p.BookingID); err != nil {
			if errors.Is(err, booking.ErrInvalidTransition) {
				// cancelled or completed by hand before the slot ended
				utils.GetLogger().Debug("[BookingWorker] completion skipped", zap.String("bookingId", p.BookingID))
				return nil
			}
			utils.GetLogger().Warn("[BookingWorker] completion failed", zap.String("bookingId", p.BookingID), zap.Error(err))
			return err
		}
		return nil
	}
}

func handleExpireTask(svc BookingLifecycle) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseBookingPayload(task)
		if err != nil {
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		if err := svc.ExpirePending(ctx, p.BookingID); err != nil {
			utils.GetLogger().Warn("[BookingWorker] expiry failed", zap.String("bookingId", p.BookingID), zap.Error(err))
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings the queue Redis periodically to detect failures at runtime.
func monitorRedisConnection(ctx context.Context, cfg config.Config) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil {
				utils.GetLogger().Warn("[BookingWorker] Redis connection lost", zap.Error(err))
			}
		}
	}
}

// zapAsynqLogger adapts zap to asynq's logger interface.
type zapAsynqLogger struct {
	s *zap.SugaredLogger
}

func (l zapAsynqLogger) Debug(args ...interface{}) { l.s.Debug(args...) }
func (l zapAsynqLogger) Info(args ...interface{})  { l.s.Info(args...) }
func (l zapAsynqLogger) Warn(args ...interface{})  { l.s.Warn(args...) }
func (l zapAsynqLogger) Error(args ...interface{}) { l.s.Error(args...) }
func (l zapAsynqLogger) Fatal(args ...interface{}) { l.s.Fatal(args...) }
