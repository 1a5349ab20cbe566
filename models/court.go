package models

import "time"

const (
	DefaultOpenTime  = "06:00"
	DefaultCloseTime = "22:00"
)

// Court is a single bookable playing surface of a facility.
type Court struct {
	ID           string    `bson:"id" json:"id"`
	FacilityID   string    `bson:"facilityId" json:"facilityId"`
	Name         string    `bson:"name" json:"name"`
	Sport        string    `bson:"sport" json:"sport"`
	PricePerHour float64   `bson:"pricePerHour" json:"pricePerHour"`
	OpenTime     string    `bson:"openTime" json:"openTime"`
	CloseTime    string    `bson:"closeTime" json:"closeTime"`
	IsActive     bool      `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Hours returns the court's opening window in minutes from midnight,
// falling back to 06:00-22:00 when unset or malformed.
func (c *Court) Hours() (openMin, closeMin int) {
	openMin, err := ParseClock(c.OpenTime)
	if err != nil {
		openMin, _ = ParseClock(DefaultOpenTime)
	}
	closeMin, err = ParseClock(c.CloseTime)
	if err != nil || closeMin <= openMin {
		closeMin, _ = ParseClock(DefaultCloseTime)
	}
	return openMin, closeMin
}

// CourtInput is the body of court create/update calls.
type CourtInput struct {
	FacilityID   string   `json:"facilityId"`
	Name         string   `json:"name"`
	Sport        string   `json:"sport"`
	PricePerHour *float64 `json:"pricePerHour"`
	OpenTime     string   `json:"openTime"`
	CloseTime    string   `json:"closeTime"`
}
