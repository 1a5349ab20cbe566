package models

import "time"

// OfferStatus is the negotiation state of a price offer.
type OfferStatus string

const (
	OfferPending   OfferStatus = "pending"
	OfferAccepted  OfferStatus = "accepted"
	OfferRejected  OfferStatus = "rejected"
	OfferCountered OfferStatus = "countered"
)

// OfferAction is what a party does to an offer.
type OfferAction string

const (
	OfferActionAccept  OfferAction = "accept"
	OfferActionReject  OfferAction = "reject"
	OfferActionCounter OfferAction = "counter"
)

// Offer is a price-negotiation proposal for a slot or an existing booking.
type Offer struct {
	ID            string      `bson:"id" json:"id"`
	UserID        string      `bson:"userId" json:"userId"`
	FacilityID    string      `bson:"facilityId" json:"facilityId"`
	CourtID       string      `bson:"courtId" json:"courtId"`
	BookingID     string      `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	Date          string      `bson:"date" json:"date"`
	StartTime     string      `bson:"startTime" json:"startTime"`
	EndTime       string      `bson:"endTime" json:"endTime"`
	OriginalPrice float64     `bson:"originalPrice" json:"originalPrice"`
	OfferedPrice  float64     `bson:"offeredPrice" json:"offeredPrice"`
	CounterPrice  *float64    `bson:"counterPrice,omitempty" json:"counterPrice,omitempty"`
	Message       string      `bson:"message,omitempty" json:"message,omitempty"`
	Status        OfferStatus `bson:"status" json:"status"`
	CreatedAt     time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time   `bson:"updatedAt" json:"updatedAt"`
}

// OfferRequest is the body of POST /api/offers.
type OfferRequest struct {
	FacilityID    string  `json:"facilityId" binding:"required"`
	CourtID       string  `json:"courtId" binding:"required"`
	BookingID     string  `json:"bookingId"`
	Date          string  `json:"date" binding:"required"`
	StartTime     string  `json:"startTime" binding:"required"`
	EndTime       string  `json:"endTime" binding:"required"`
	OriginalPrice float64 `json:"originalPrice"`
	OfferedPrice  float64 `json:"offeredPrice" binding:"required"`
	Message       string  `json:"message"`
}

// OfferActionRequest is the optional body of PUT /api/offers/:id/:action.
type OfferActionRequest struct {
	CounterPrice float64 `json:"counterPrice"`
}

// OfferStats summarises a facility's offers.
type OfferStats struct {
	Total           int64                 `json:"total"`
	ByStatus        map[OfferStatus]int64 `json:"byStatus"`
	AverageDiscount float64               `json:"averageDiscount"`
}
