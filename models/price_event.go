package models

import "time"

const (
	PriceSourceCourtUpdate   = "court_update"
	PriceSourceOfferAccepted = "offer_accepted"
)

// PriceEvent records a price change of a court or of a single booking.
type PriceEvent struct {
	ID         string    `bson:"id" json:"id"`
	CourtID    string    `bson:"courtId" json:"courtId"`
	FacilityID string    `bson:"facilityId" json:"facilityId"`
	OldPrice   float64   `bson:"oldPrice" json:"oldPrice"`
	NewPrice   float64   `bson:"newPrice" json:"newPrice"`
	Source     string    `bson:"source" json:"source"`
	RefID      string    `bson:"refId,omitempty" json:"refId,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}
