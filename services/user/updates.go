package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"quickcourt/database/repository"
	"quickcourt/models"
	"quickcourt/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// GetUserByID serves from the auth cache when possible.
func (s *DefaultUserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	if u, ok := s.Cache.Get(ctx, userID); ok {
		return u, nil
	}
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	s.Cache.Set(ctx, u)
	return u, nil
}

func (s *DefaultUserService) ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) error {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !utils.CheckSecret(u.PasswordHash, req.CurrentPassword) {
		return ErrWrongPassword
	}
	hash, err := utils.HashSecret(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.Repo.UpdateSetDocument(ctx, userID, bson.M{"passwordHash": hash})
}

func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID string, req models.ProfileUpdateRequest) (*models.User, error) {
	setFields := bson.M{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, utils.BadRequest("name cannot be empty")
		}
		setFields["name"] = name
	}
	if req.Phone != nil {
		setFields["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.AvatarURL != nil {
		setFields["avatarUrl"] = strings.TrimSpace(*req.AvatarURL)
	}
	if len(setFields) > 0 {
		if err := s.Repo.UpdateSetDocument(ctx, userID, setFields); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
		s.Cache.Evict(ctx, userID)
	}
	return s.GetUserByID(ctx, userID)
}

func (s *DefaultUserService) UpdateFCMToken(ctx context.Context, userID, token string) error {
	if err := s.Repo.UpdateSetDocument(ctx, userID, bson.M{"fcmToken": strings.TrimSpace(token)}); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	s.Cache.Evict(ctx, userID)
	return nil
}
