package models

import (
	"math"
	"time"
)

// Coupon is a percentage discount an owner hands out.
type Coupon struct {
	ID         string     `bson:"id" json:"id"`
	Code       string     `bson:"code" json:"code"`
	OwnerID    string     `bson:"ownerId" json:"ownerId"`
	FacilityID string     `bson:"facilityId,omitempty" json:"facilityId,omitempty"`
	PercentOff float64    `bson:"percentOff" json:"percentOff"`
	ExpiresAt  *time.Time `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
	Active     bool       `bson:"active" json:"active"`
	CreatedAt  time.Time  `bson:"createdAt" json:"createdAt"`
}

// Usable reports whether the coupon can be applied to a booking at facilityID.
func (c *Coupon) Usable(facilityID string, now time.Time) bool {
	if !c.Active {
		return false
	}
	if c.ExpiresAt != nil && now.After(*c.ExpiresAt) {
		return false
	}
	return c.FacilityID == "" || c.FacilityID == facilityID
}

// Apply returns price reduced by the coupon, rounded to two decimals.
func (c *Coupon) Apply(price float64) float64 {
	discounted := price * (1 - c.PercentOff/100)
	return math.Round(discounted*100) / 100
}

// CouponRequest is the body of POST /api/coupons.
type CouponRequest struct {
	Code       string     `json:"code" binding:"required"`
	FacilityID string     `json:"facilityId"`
	PercentOff float64    `json:"percentOff" binding:"required,gt=0,lte=100"`
	ExpiresAt  *time.Time `json:"expiresAt"`
}
