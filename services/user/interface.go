package user

import (
	"context"
	"time"

	userRepo "quickcourt/database/repository/user"
	"quickcourt/models"
	"quickcourt/services/mail"
)

type UserService interface {
	// Registration and authentication
	Signup(ctx context.Context, req models.SignupRequest) (*models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	VerifyOTP(ctx context.Context, req models.VerifyOTPRequest) (*models.AuthResponse, error)
	ResendOTP(ctx context.Context, email string) error

	// Account management
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) error
	UpdateProfile(ctx context.Context, userID string, req models.ProfileUpdateRequest) (*models.User, error)
	UpdateFCMToken(ctx context.Context, userID, token string) error

	// Trust
	RecordOutcome(ctx context.Context, userID string, event models.ReliabilityEvent) error

	// Admin
	ListUsers(ctx context.Context, filter models.UserFilter) (*models.Page[models.User], error)
	SetBanned(ctx context.Context, targetID string, banned bool) (*models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	Cache    *UserCache
	Mailer   mail.Mailer
	TokenTTL time.Duration
}
