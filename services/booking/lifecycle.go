package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quickcourt/database/repository"
	"quickcourt/models"
	"quickcourt/services/slot"
	"quickcourt/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Cancel is the user's confirmed → cancelled transition. It frees the slots
// and costs the user reliability.
func (s *DefaultBookingService) Cancel(ctx context.Context, userID, bookingID string) (*models.Booking, error) {
	b, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrNotBookingOwner
	}
	if b.Status != models.BookingConfirmed {
		return nil, ErrInvalidTransition
	}

	windows := slot.SpanWindows(b.CourtID, b.Date, b.StartTime, b.EndTime)
	var cancelled *models.Booking
	err = s.Tx.WithTransaction(ctx, func(txCtx context.Context) error {
		updated, err := s.Bookings.Transition(txCtx, b.ID, []models.BookingStatus{models.BookingConfirmed}, bson.M{
			"status":      models.BookingCancelled,
			"cancelledAt": time.Now(),
		})
		if err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return ErrInvalidTransition
			}
			return fmt.Errorf("failed to cancel booking: %w", err)
		}
		for _, w := range windows {
			if err := s.Slots.Release(txCtx, w); err != nil {
				return fmt.Errorf("failed to release slot %s-%s: %w", w.Start, w.End, err)
			}
		}
		if err := s.Reliability.RecordOutcome(txCtx, b.UserID, models.ReliabilityCancelled); err != nil {
			return fmt.Errorf("failed to record cancellation: %w", err)
		}
		cancelled = updated
		return nil
	})
	s.Slots.Invalidate(ctx, windows...)
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("booking cancelled", zap.String("bookingId", b.ID), zap.String("userId", userID))
	s.notify(ctx, cancelled, s.ownerOf(ctx, cancelled.FacilityID))
	return cancelled, nil
}

// CompleteAsOwner lets the facility owner close a played booking early.
func (s *DefaultBookingService) CompleteAsOwner(ctx context.Context, ownerID, bookingID string) (*models.Booking, error) {
	b, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if s.ownerOf(ctx, b.FacilityID) != ownerID {
		return nil, ErrNotBookingOwner
	}
	return s.Complete(ctx, bookingID)
}

// Complete is the confirmed → completed transition, run by the owner or by
// the job scheduled at the booking's end time.
func (s *DefaultBookingService) Complete(ctx context.Context, bookingID string) (*models.Booking, error) {
	var completed *models.Booking
	err := s.Tx.WithTransaction(ctx, func(txCtx context.Context) error {
		updated, err := s.Bookings.Transition(txCtx, bookingID, []models.BookingStatus{models.BookingConfirmed}, bson.M{
			"status":      models.BookingCompleted,
			"completedAt": time.Now(),
		})
		if err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return ErrInvalidTransition
			}
			return fmt.Errorf("failed to complete booking: %w", err)
		}
		if err := s.Reliability.RecordOutcome(txCtx, updated.UserID, models.ReliabilityCompleted); err != nil {
			return fmt.Errorf("failed to record completion: %w", err)
		}
		completed = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("booking completed", zap.String("bookingId", bookingID))
	s.notify(ctx, completed, s.ownerOf(ctx, completed.FacilityID))
	return completed, nil
}

// ExpirePending cancels a booking whose payment never arrived. Bookings that
// already left pending are ignored.
func (s *DefaultBookingService) ExpirePending(ctx context.Context, bookingID string) error {
	expired, err := s.Bookings.Transition(ctx, bookingID, []models.BookingStatus{models.BookingPending}, bson.M{
		"status":         models.BookingCancelled,
		"cancelledAt":    time.Now(),
		"payment.status": "expired",
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil
		}
		return fmt.Errorf("failed to expire booking: %w", err)
	}
	utils.GetLogger().Info("pending booking expired", zap.String("bookingId", bookingID))
	s.notify(ctx, expired, "")
	return nil
}

// afterConfirm queues completion and tells both sides about a new booking.
func (s *DefaultBookingService) afterConfirm(ctx context.Context, b *models.Booking, ownerID string) {
	if s.Scheduler != nil {
		if end, err := EndsAt(b); err == nil {
			if err := s.Scheduler.ScheduleCompletion(ctx, b.ID, end); err != nil {
				utils.GetLogger().Warn("failed to schedule booking completion", zap.String("bookingId", b.ID), zap.Error(err))
			}
		}
	}
	s.notify(ctx, b, ownerID)
}

func (s *DefaultBookingService) notify(ctx context.Context, b *models.Booking, ownerID string) {
	if s.Notifier == nil || b == nil {
		return
	}
	rooms := []string{models.UserRoom(b.UserID)}
	if ownerID != "" {
		rooms = append(rooms, models.UserRoom(ownerID))
	}
	if err := s.Notifier.Publish(ctx, models.EventBookingUpdate, b, rooms...); err != nil {
		utils.GetLogger().Debug("booking notification failed", zap.String("bookingId", b.ID), zap.Error(err))
	}
}

// ownerOf resolves a facility's owner, or "" when it cannot be loaded.
func (s *DefaultBookingService) ownerOf(ctx context.Context, facilityID string) string {
	f, err := s.Facilities.GetByID(ctx, facilityID)
	if err != nil {
		utils.GetLogger().Warn("failed to resolve facility owner", zap.String("facilityId", facilityID), zap.Error(err))
		return ""
	}
	return f.OwnerID
}

func (s *DefaultBookingService) load(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	return b, nil
}

// EndsAt is the wall-clock end of a booking in the server's time zone.
func EndsAt(b *models.Booking) (time.Time, error) {
	return time.ParseInLocation(models.DateLayout+" 15:04", b.Date+" "+b.EndTime, time.Local)
}
