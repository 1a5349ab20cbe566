package models

import "time"

// FacilityStatus is the admin moderation state of a facility.
type FacilityStatus string

const (
	FacilityPending  FacilityStatus = "pending"
	FacilityApproved FacilityStatus = "approved"
	FacilityRejected FacilityStatus = "rejected"
)

// GeoPoint is a plain latitude/longitude pair.
type GeoPoint struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Facility is a venue owned by one owner and holding one or more courts.
type Facility struct {
	ID              string         `bson:"id" json:"id"`
	OwnerID         string         `bson:"ownerId" json:"ownerId"`
	Name            string         `bson:"name" json:"name"`
	Description     string         `bson:"description,omitempty" json:"description,omitempty"`
	Address         string         `bson:"address" json:"address"`
	City            string         `bson:"city,omitempty" json:"city,omitempty"`
	Location        *GeoPoint      `bson:"location,omitempty" json:"location,omitempty"`
	Sports          []string       `bson:"sports" json:"sports"`
	Amenities       []string       `bson:"amenities,omitempty" json:"amenities,omitempty"`
	Photos          []string       `bson:"photos,omitempty" json:"photos,omitempty"`
	Status          FacilityStatus `bson:"status" json:"status"`
	RejectionReason string         `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
	Rating          float64        `bson:"rating" json:"rating"`
	ReviewCount     int            `bson:"reviewCount" json:"reviewCount"`
	CreatedAt       time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// FacilityInput is the body of owner create/update calls.
type FacilityInput struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Address     string    `json:"address" binding:"required"`
	City        string    `json:"city"`
	Location    *GeoPoint `json:"location"`
	Sports      []string  `json:"sports"`
	Amenities   []string  `json:"amenities"`
	Photos      []string  `json:"photos"`
}

// FacilityFilter narrows the public facility listing.
type FacilityFilter struct {
	Query   string
	Sport   string
	City    string
	OwnerID string
	Status  FacilityStatus
	Page    int
	Limit   int
}

// FacilityDetails is a facility together with its active courts.
type FacilityDetails struct {
	Facility
	Courts []Court `json:"courts"`
}

// Page wraps a paginated listing.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// RejectRequest is the optional body of PUT /api/admin/facilities/:id/reject.
type RejectRequest struct {
	Reason string `json:"reason"`
}
