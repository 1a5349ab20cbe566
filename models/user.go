package models

import "time"

// DefaultReliabilityScore is the trust score assigned to new users.
const DefaultReliabilityScore = 80

// User represents a platform account of any role.
type User struct {
	ID               string     `bson:"id" json:"id"`
	Name             string     `bson:"name" json:"name"`
	Email            string     `bson:"email" json:"email"`
	Phone            string     `bson:"phone,omitempty" json:"phone,omitempty"`
	AvatarURL        string     `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	PasswordHash     string     `bson:"passwordHash" json:"-"`
	Role             Role       `bson:"role" json:"role"`
	ReliabilityScore *int       `bson:"reliabilityScore,omitempty" json:"reliabilityScore,omitempty"`
	Cancellations    int        `bson:"cancellations" json:"cancellations"`
	Banned           bool       `bson:"banned" json:"banned"`
	IsVerified       bool       `bson:"isVerified" json:"isVerified"`
	OTPHash          string     `bson:"otpHash,omitempty" json:"-"`
	OTPExpiresAt     *time.Time `bson:"otpExpiresAt,omitempty" json:"-"`
	FCMToken         string     `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt        time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// Score returns the reliability score, falling back to the default when unset.
func (u *User) Score() int {
	if u.ReliabilityScore == nil {
		return DefaultReliabilityScore
	}
	return *u.ReliabilityScore
}

// SignupRequest is the body of POST /api/auth/signup.
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// VerifyOTPRequest is the body of POST /api/auth/verify-otp.
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

// ChangePasswordRequest is the body of POST /api/auth/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// ProfileUpdateRequest is the body of PUT /api/auth/profile.
type ProfileUpdateRequest struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	AvatarURL *string `json:"avatarUrl"`
}

// AuthResponse is returned on successful login and OTP verification.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// UserFilter narrows the admin user listing.
type UserFilter struct {
	Role   Role
	Query  string
	Banned *bool
	Page   int
	Limit  int
}

// ReliabilityEvent is a booking outcome that moves a user's reliability score.
type ReliabilityEvent string

const (
	ReliabilityCompleted ReliabilityEvent = "completed"
	ReliabilityCancelled ReliabilityEvent = "cancelled"
)
