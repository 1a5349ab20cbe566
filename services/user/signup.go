package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"quickcourt/database/repository"
	"quickcourt/models"
	"quickcourt/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Signup creates an unverified account and mails its first OTP.
func (s *DefaultUserService) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	role := models.RoleUser
	if req.Role != "" {
		r, ok := models.ParseRole(req.Role)
		if !ok {
			return nil, ErrInvalidRole
		}
		role = r
	}
	if role == models.RoleAdmin {
		return nil, ErrAdminSignup
	}

	hash, err := utils.HashSecret(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	score := models.DefaultReliabilityScore
	u := &models.User{
		ID:               uuid.New().String(),
		Name:             strings.TrimSpace(req.Name),
		Email:            req.Email,
		Phone:            req.Phone,
		PasswordHash:     hash,
		Role:             role,
		ReliabilityScore: &score,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailInUse
		}
		utils.GetLogger().Error("Signup: failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	if err := s.issueOTP(ctx, u); err != nil {
		utils.GetLogger().Warn("Signup: failed to send OTP", zap.String("email", u.Email), zap.Error(err))
	}
	return u, nil
}

// issueOTP stores a fresh hashed code on the user and mails the plaintext.
func (s *DefaultUserService) issueOTP(ctx context.Context, u *models.User) error {
	code, err := utils.GenerateNumericOTP(6)
	if err != nil {
		return err
	}
	hash, err := utils.HashSecret(code)
	if err != nil {
		return err
	}
	expires := time.Now().Add(utils.OTPTTL)
	if err := s.Repo.UpdateSetDocument(ctx, u.ID, bson.M{"otpHash": hash, "otpExpiresAt": expires}); err != nil {
		return err
	}
	u.OTPHash = hash
	u.OTPExpiresAt = &expires

	body := fmt.Sprintf("Hi %s,\n\nYour QuickCourt verification code is %s. It expires in %d minutes.\n",
		u.Name, code, int(utils.OTPTTL.Minutes()))
	return s.Mailer.Send(ctx, u.Email, "Your QuickCourt verification code", body)
}

func (s *DefaultUserService) VerifyOTP(ctx context.Context, req models.VerifyOTPRequest) (*models.AuthResponse, error) {
	u, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if u.Banned {
		return nil, ErrBanned
	}
	if u.OTPHash == "" || u.OTPExpiresAt == nil || time.Now().After(*u.OTPExpiresAt) {
		return nil, ErrOTPExpired
	}
	if !utils.CheckSecret(u.OTPHash, strings.TrimSpace(req.OTP)) {
		return nil, ErrOTPInvalid
	}

	if err := s.Repo.UpdateSetDocument(ctx, u.ID, bson.M{"isVerified": true, "otpHash": "", "otpExpiresAt": nil}); err != nil {
		return nil, err
	}
	u.IsVerified = true
	u.OTPHash = ""
	u.OTPExpiresAt = nil
	s.Cache.Evict(ctx, u.ID)
	return s.authResponse(u)
}

func (s *DefaultUserService) ResendOTP(ctx context.Context, email string) error {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if u.Banned {
		return ErrBanned
	}
	return s.issueOTP(ctx, u)
}
