package user

import (
	"context"
	"errors"
	"fmt"

	"quickcourt/database/repository"
	"quickcourt/models"
	"quickcourt/utils"

	"go.uber.org/zap"
)

func (s *DefaultUserService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	u, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		utils.GetLogger().Error("Login: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if !utils.CheckSecret(u.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}
	if u.Banned {
		return nil, ErrBanned
	}
	if !u.IsVerified {
		if err := s.issueOTP(ctx, u); err != nil {
			utils.GetLogger().Warn("Login: failed to send OTP", zap.String("email", u.Email), zap.Error(err))
		}
		return nil, ErrOTPRequired
	}
	return s.authResponse(u)
}

func (s *DefaultUserService) authResponse(u *models.User) (*models.AuthResponse, error) {
	token, err := utils.GenerateToken(u.ID, u.Email, string(u.Role), s.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &models.AuthResponse{Token: token, User: u}, nil
}
