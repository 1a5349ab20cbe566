package models

import "time"

// TimeSlot is one bookable hour window for one court on one date.
type TimeSlot struct {
	ID            string    `bson:"id" json:"id"`
	CourtID       string    `bson:"courtId" json:"courtId"`
	FacilityID    string    `bson:"facilityId,omitempty" json:"facilityId,omitempty"`
	Date          string    `bson:"date" json:"date"`
	Start         string    `bson:"start" json:"start"`
	End           string    `bson:"end" json:"end"`
	IsBlocked     bool      `bson:"isBlocked" json:"isBlocked"`
	IsBooked      bool      `bson:"isBooked" json:"isBooked"`
	PriceSnapshot float64   `bson:"priceSnapshot" json:"priceSnapshot"`
	BookingID     string    `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Available reports whether the slot can still be reserved.
func (s TimeSlot) Available() bool {
	return !s.IsBlocked && !s.IsBooked
}

// SlotKey identifies a slot independently of whether it has been persisted.
type SlotKey struct {
	CourtID string
	Date    string
	Start   string
	End     string
}

// BlockSlotRequest is the body of POST /api/slots/block and /unblock.
type BlockSlotRequest struct {
	CourtID string `json:"courtId" binding:"required"`
	Date    string `json:"date" binding:"required"`
	Start   string `json:"start" binding:"required"`
	End     string `json:"end" binding:"required"`
}

// AvailableTime is one row of GET /api/bookings/available-times.
type AvailableTime struct {
	Start     string  `json:"start"`
	End       string  `json:"end"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
}
