package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// ActiveBookingStatuses hold (or may soon hold) a court's time.
var ActiveBookingStatuses = []BookingStatus{BookingPending, BookingConfirmed}

const (
	PaymentMethodSimulated = "simulated"
	PaymentMethodCard      = "card"
)

// PaymentInfo is the payment sub-record of a booking.
type PaymentInfo struct {
	Method        string `bson:"method" json:"method"`
	TransactionID string `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	ClientSecret  string `bson:"clientSecret,omitempty" json:"-"`
	Status        string `bson:"status,omitempty" json:"status,omitempty"`
}

// Booking is a user's claim on one or more consecutive hourly slots.
type Booking struct {
	ID          string        `bson:"id" json:"id"`
	UserID      string        `bson:"userId" json:"userId"`
	FacilityID  string        `bson:"facilityId" json:"facilityId"`
	CourtID     string        `bson:"courtId" json:"courtId"`
	Date        string        `bson:"date" json:"date"`
	StartTime   string        `bson:"startTime" json:"startTime"`
	EndTime     string        `bson:"endTime" json:"endTime"`
	Duration    int           `bson:"duration" json:"duration"`
	Price       float64       `bson:"price" json:"price"`
	CouponCode  string        `bson:"couponCode,omitempty" json:"couponCode,omitempty"`
	Status      BookingStatus `bson:"status" json:"status"`
	Payment     PaymentInfo   `bson:"payment" json:"payment"`
	ConfirmedAt *time.Time    `bson:"confirmedAt,omitempty" json:"confirmedAt,omitempty"`
	CancelledAt *time.Time    `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	CompletedAt *time.Time    `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// BookingRequest is the body of POST /api/bookings and /create-pending.
type BookingRequest struct {
	CourtID    string  `json:"courtId" binding:"required"`
	Date       string  `json:"date" binding:"required"`
	StartTime  string  `json:"startTime" binding:"required"`
	Duration   int     `json:"duration"`
	Amount     float64 `json:"amount"`
	CouponCode string  `json:"couponCode"`
}

// VerifyPaymentRequest is the body of POST /api/bookings/verify-payment.
type VerifyPaymentRequest struct {
	BookingID       string `json:"bookingId" binding:"required"`
	PaymentIntentID string `json:"paymentIntentId"`
}

// PendingBookingResponse is returned by create-pending.
type PendingBookingResponse struct {
	Booking         *Booking `json:"booking"`
	ClientSecret    string   `json:"clientSecret"`
	PaymentIntentID string   `json:"paymentIntentId"`
}

// BookingFilter narrows booking listings.
type BookingFilter struct {
	UserID      string
	FacilityIDs []string
	CourtID     string
	Date        string
	Status      BookingStatus
}
