package models

import "time"

// OwnerProfile holds an owner's business details.
type OwnerProfile struct {
	UserID       string    `bson:"userId" json:"userId"`
	BusinessName string    `bson:"businessName" json:"businessName"`
	Phone        string    `bson:"phone,omitempty" json:"phone,omitempty"`
	PayoutEmail  string    `bson:"payoutEmail,omitempty" json:"payoutEmail,omitempty"`
	GSTNumber    string    `bson:"gstNumber,omitempty" json:"gstNumber,omitempty"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// OwnerProfileRequest is the body of PUT /api/owner/profile.
type OwnerProfileRequest struct {
	BusinessName string `json:"businessName" binding:"required"`
	Phone        string `json:"phone"`
	PayoutEmail  string `json:"payoutEmail" binding:"omitempty,email"`
	GSTNumber    string `json:"gstNumber"`
}
