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

// VerifyPayment reserves the booking's slots, confirms its intent with the
// provider and moves it to confirmed. On any failure after the reservation
// the held slots are released and the booking stays pending.
func (s *DefaultBookingService) VerifyPayment(ctx context.Context, userID string, req models.VerifyPaymentRequest) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if b.UserID != userID {
		return nil, ErrBookingNotFound
	}
	switch b.Status {
	case models.BookingConfirmed:
		return b, nil
	case models.BookingPending:
	default:
		return nil, ErrInvalidTransition
	}

	intentID := req.PaymentIntentID
	if intentID == "" {
		intentID = b.Payment.TransactionID
	} else if b.Payment.TransactionID != "" && intentID != b.Payment.TransactionID {
		return nil, ErrIntentMismatch
	}

	court, err := s.Courts.GetByID(ctx, b.CourtID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, slot.ErrCourtNotFound
		}
		return nil, fmt.Errorf("failed to load court: %w", err)
	}

	windows := slot.SpanWindows(b.CourtID, b.Date, b.StartTime, b.EndTime)
	share := hourlyShare(b.Price, len(windows))
	var held []models.SlotKey
	err = s.Tx.WithTransaction(ctx, func(txCtx context.Context) error {
		held = held[:0]
		for _, w := range windows {
			if err := s.Slots.Reserve(txCtx, court, w, share, b.ID); err != nil {
				return err
			}
			held = append(held, w)
		}
		return nil
	})
	s.Slots.Invalidate(ctx, windows...)
	if err != nil {
		s.releaseHeld(ctx, held, b.ID)
		return nil, err
	}

	intent, err := s.Payments.ConfirmIntent(ctx, intentID)
	if err != nil || !intent.Succeeded() {
		s.releaseHeld(ctx, held, b.ID)
		status := "failed"
		if err != nil {
			utils.GetLogger().Warn("VerifyPayment: provider confirmation failed", zap.String("bookingId", b.ID), zap.Error(err))
		} else {
			status = intent.Status
		}
		if _, uerr := s.Bookings.Transition(ctx, b.ID, []models.BookingStatus{models.BookingPending}, bson.M{"payment.status": status}); uerr != nil {
			utils.GetLogger().Warn("VerifyPayment: failed to record payment status", zap.String("bookingId", b.ID), zap.Error(uerr))
		}
		return nil, ErrPaymentNotSuccessful
	}

	now := time.Now()
	confirmed, err := s.Bookings.Transition(ctx, b.ID, []models.BookingStatus{models.BookingPending}, bson.M{
		"status":         models.BookingConfirmed,
		"confirmedAt":    now,
		"payment.status": intent.Status,
	})
	if err != nil {
		s.releaseHeld(ctx, held, b.ID)
		if errors.Is(err, repository.ErrConflict) {
			// expired or cancelled while the provider call was in flight
			utils.GetLogger().Error("VerifyPayment: booking left pending state after payment succeeded",
				zap.String("bookingId", b.ID), zap.String("intentId", intentID))
			return nil, ErrInvalidTransition
		}
		return nil, fmt.Errorf("failed to confirm booking: %w", err)
	}

	utils.GetLogger().Info("booking confirmed",
		zap.String("bookingId", confirmed.ID),
		zap.String("courtId", confirmed.CourtID),
		zap.String("date", confirmed.Date),
		zap.String("start", confirmed.StartTime),
		zap.String("intentId", intentID))
	s.afterConfirm(ctx, confirmed, s.ownerOf(ctx, confirmed.FacilityID))
	return confirmed, nil
}
