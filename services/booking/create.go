package booking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"quickcourt/database/repository"
	"quickcourt/models"
	"quickcourt/services/payment"
	"quickcourt/services/slot"
	"quickcourt/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// bookingPlan is a validated booking request.
type bookingPlan struct {
	court    *models.Court
	facility *models.Facility
	windows  []models.SlotKey
	price    float64
	coupon   string
}

func (p *bookingPlan) start() string { return p.windows[0].Start }
func (p *bookingPlan) end() string   { return p.windows[len(p.windows)-1].End }

func (p *bookingPlan) newBooking(userID string) *models.Booking {
	return &models.Booking{
		ID:         uuid.New().String(),
		UserID:     userID,
		FacilityID: p.facility.ID,
		CourtID:    p.court.ID,
		Date:       p.windows[0].Date,
		StartTime:  p.start(),
		EndTime:    p.end(),
		Duration:   len(p.windows),
		Price:      p.price,
		CouponCode: p.coupon,
	}
}

// plan validates the court, its facility and the requested range, and prices it.
func (s *DefaultBookingService) plan(ctx context.Context, req models.BookingRequest) (*bookingPlan, error) {
	court, err := s.Courts.GetByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, slot.ErrCourtNotFound
		}
		return nil, fmt.Errorf("failed to load court: %w", err)
	}
	if !court.IsActive {
		return nil, ErrCourtUnavailable
	}
	facility, err := s.Facilities.GetByID(ctx, court.FacilityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load facility: %w", err)
	}
	if facility.Status != models.FacilityApproved {
		return nil, ErrFacilityNotBookable
	}

	duration := req.Duration
	if duration == 0 {
		duration = 1
	}
	windows, err := slot.HourWindows(court, req.Date, req.StartTime, duration)
	if err != nil {
		return nil, err
	}

	// a client quote may round up the court price, never undercut it
	price := court.PricePerHour * float64(duration)
	if req.Amount > 0 {
		if req.Amount < price {
			return nil, ErrAmountBelowPrice
		}
		price = req.Amount
	}
	p := &bookingPlan{court: court, facility: facility, windows: windows, price: price}

	if code := strings.TrimSpace(req.CouponCode); code != "" {
		coupon, err := s.Coupons.GetByCode(ctx, code)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrInvalidCoupon
			}
			return nil, fmt.Errorf("failed to load coupon: %w", err)
		}
		if !coupon.Usable(facility.ID, time.Now()) {
			return nil, ErrInvalidCoupon
		}
		p.price = coupon.Apply(p.price)
		p.coupon = coupon.Code
	}
	return p, nil
}

func (s *DefaultBookingService) checkOverlap(ctx context.Context, p *bookingPlan) error {
	active, err := s.Bookings.FindActiveOverlap(ctx, p.court.ID, p.windows[0].Date, p.start(), p.end(), "")
	if err != nil {
		return fmt.Errorf("failed to check conflicting bookings: %w", err)
	}
	if len(active) > 0 {
		return ErrConflictingBooking
	}
	return nil
}

// hourlyShare splits a booking price over its slots, in paise precision.
func hourlyShare(price float64, hours int) float64 {
	if hours < 1 {
		return price
	}
	return math.Round(price/float64(hours)*100) / 100
}

// CreateDirect books and confirms in one step with a simulated payment.
func (s *DefaultBookingService) CreateDirect(ctx context.Context, userID string, req models.BookingRequest) (*models.Booking, error) {
	p, err := s.plan(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.checkOverlap(ctx, p); err != nil {
		return nil, err
	}

	now := time.Now()
	b := p.newBooking(userID)
	b.Status = models.BookingConfirmed
	b.ConfirmedAt = &now
	b.Payment = models.PaymentInfo{
		Method:        models.PaymentMethodSimulated,
		TransactionID: "sim_" + uuid.New().String(),
		Status:        payment.StatusSucceeded,
	}

	share := hourlyShare(b.Price, len(p.windows))
	var held []models.SlotKey
	err = s.Tx.WithTransaction(ctx, func(txCtx context.Context) error {
		held = held[:0]
		for _, w := range p.windows {
			if err := s.Slots.Reserve(txCtx, p.court, w, share, b.ID); err != nil {
				return err
			}
			held = append(held, w)
		}
		if err := s.Bookings.Create(txCtx, b); err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return nil
	})
	s.Slots.Invalidate(ctx, p.windows...)
	if err != nil {
		s.releaseHeld(ctx, held, b.ID)
		return nil, err
	}

	utils.GetLogger().Info("booking confirmed",
		zap.String("bookingId", b.ID),
		zap.String("courtId", b.CourtID),
		zap.String("date", b.Date),
		zap.String("start", b.StartTime),
		zap.String("payment", models.PaymentMethodSimulated))
	s.afterConfirm(ctx, b, p.facility.OwnerID)
	return b, nil
}

// CreatePending opens a payment intent for a free range. Slots are reserved
// only once the payment is verified.
func (s *DefaultBookingService) CreatePending(ctx context.Context, userID string, req models.BookingRequest) (*models.PendingBookingResponse, error) {
	p, err := s.plan(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.checkOverlap(ctx, p); err != nil {
		return nil, err
	}
	if err := s.Slots.EnsureFree(ctx, p.court, p.windows); err != nil {
		return nil, err
	}

	b := p.newBooking(userID)
	intent, err := s.Payments.CreateIntent(ctx, b.Price, s.currency(), map[string]string{
		"bookingId": b.ID,
		"userId":    userID,
		"courtId":   b.CourtID,
	})
	if err != nil {
		utils.GetLogger().Error("CreatePending: payment intent failed", zap.String("bookingId", b.ID), zap.Error(err))
		return nil, ErrPaymentProvider
	}

	b.Status = models.BookingPending
	b.Payment = models.PaymentInfo{
		Method:        models.PaymentMethodCard,
		TransactionID: intent.ID,
		ClientSecret:  intent.ClientSecret,
		Status:        intent.Status,
	}
	if err := s.Bookings.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if s.Scheduler != nil {
		if err := s.Scheduler.ScheduleExpiry(ctx, b.ID, time.Now().Add(s.pendingTTL())); err != nil {
			utils.GetLogger().Warn("failed to schedule pending expiry", zap.String("bookingId", b.ID), zap.Error(err))
		}
	}
	return &models.PendingBookingResponse{
		Booking:         b,
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
	}, nil
}

func (s *DefaultBookingService) currency() string {
	if s.Currency == "" {
		return "inr"
	}
	return s.Currency
}

func (s *DefaultBookingService) pendingTTL() time.Duration {
	if s.PendingTTL <= 0 {
		return DefaultPendingTTL
	}
	return s.PendingTTL
}

// releaseHeld undoes reservations this booking made. Rows since taken by
// another booking are left alone.
func (s *DefaultBookingService) releaseHeld(ctx context.Context, held []models.SlotKey, bookingID string) {
	for _, w := range held {
		if err := s.Slots.ReleaseHeldBy(ctx, w, bookingID); err != nil {
			utils.GetLogger().Error("failed to release slot after aborted booking",
				zap.String("bookingId", bookingID),
				zap.String("courtId", w.CourtID),
				zap.String("date", w.Date),
				zap.String("start", w.Start),
				zap.Error(err))
		}
	}
}
