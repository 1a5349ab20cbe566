package models

import "time"

// Review is a user's rating of a facility.
type Review struct {
	ID         string    `bson:"id" json:"id"`
	UserID     string    `bson:"userId" json:"userId"`
	UserName   string    `bson:"userName,omitempty" json:"userName,omitempty"`
	FacilityID string    `bson:"facilityId" json:"facilityId"`
	Rating     int       `bson:"rating" json:"rating"`
	Comment    string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// ReviewRequest is the body of POST /api/facilities/:id/reviews.
type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}
