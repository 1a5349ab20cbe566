package booking

import (
	"context"
	"time"

	"quickcourt/database"
	bookingRepo "quickcourt/database/repository/booking"
	couponRepo "quickcourt/database/repository/coupon"
	courtRepo "quickcourt/database/repository/court"
	facilityRepo "quickcourt/database/repository/facility"
	"quickcourt/models"
	"quickcourt/services/notification"
	"quickcourt/services/payment"
	"quickcourt/services/slot"
)

// DefaultPendingTTL is how long an unpaid booking may stay pending.
const DefaultPendingTTL = 15 * time.Minute

type BookingService interface {
	// Creation and payment
	CreateDirect(ctx context.Context, userID string, req models.BookingRequest) (*models.Booking, error)
	CreatePending(ctx context.Context, userID string, req models.BookingRequest) (*models.PendingBookingResponse, error)
	VerifyPayment(ctx context.Context, userID string, req models.VerifyPaymentRequest) (*models.Booking, error)

	// Lifecycle
	Cancel(ctx context.Context, userID, bookingID string) (*models.Booking, error)
	CompleteAsOwner(ctx context.Context, ownerID, bookingID string) (*models.Booking, error)
	Complete(ctx context.Context, bookingID string) (*models.Booking, error)
	ExpirePending(ctx context.Context, bookingID string) error

	// Queries
	GetBooking(ctx context.Context, userID, bookingID string) (*models.Booking, error)
	ListMine(ctx context.Context, userID string) ([]models.Booking, error)
	ListForOwner(ctx context.Context, ownerID string) ([]models.Booking, error)
	AvailableTimes(ctx context.Context, courtID, date string) ([]models.AvailableTime, error)
}

// ReliabilityRecorder applies a booking outcome to the user's trust score.
type ReliabilityRecorder interface {
	RecordOutcome(ctx context.Context, userID string, event models.ReliabilityEvent) error
}

// LifecycleScheduler queues the time-driven booking transitions.
type LifecycleScheduler interface {
	ScheduleCompletion(ctx context.Context, bookingID string, at time.Time) error
	ScheduleExpiry(ctx context.Context, bookingID string, at time.Time) error
}

// DefaultBookingService wires the booking state machine to its stores.
type DefaultBookingService struct {
	Bookings    bookingRepo.BookingRepository
	Courts      courtRepo.CourtRepository
	Facilities  facilityRepo.FacilityRepository
	Coupons     couponRepo.CouponRepository
	Slots       slot.SlotService
	Payments    payment.Gateway
	Tx          database.TxRunner
	Reliability ReliabilityRecorder
	// Scheduler may be nil; bookings then only move on explicit calls.
	Scheduler  LifecycleScheduler
	Notifier   notification.Notifier
	Currency   string
	PendingTTL time.Duration
}
