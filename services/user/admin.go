package user

import (
	"context"
	"errors"
	"fmt"

	"quickcourt/database/repository"
	"quickcourt/models"
	"quickcourt/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// ListUsers returns a page of users for the admin console.
func (s *DefaultUserService) ListUsers(ctx context.Context, filter models.UserFilter) (*models.Page[models.User], error) {
	users, total, err := s.Repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	_, page, limit := repository.Paginate(filter.Page, filter.Limit)
	return &models.Page[models.User]{Items: users, Total: total, Page: page, Limit: limit}, nil
}

// SetBanned bans or unbans a user. Admin accounts cannot be banned; the
// target is left untouched in that case.
func (s *DefaultUserService) SetBanned(ctx context.Context, targetID string, banned bool) (*models.User, error) {
	target, err := s.Repo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if banned && target.Role == models.RoleAdmin {
		return nil, ErrCannotBanAdmin
	}
	if err := s.Repo.UpdateSetDocument(ctx, targetID, bson.M{"banned": banned}); err != nil {
		return nil, err
	}
	s.Cache.Evict(ctx, targetID)
	utils.GetLogger().Info("user ban state changed", zap.String("userID", targetID), zap.Bool("banned", banned))
	target.Banned = banned
	return target, nil
}
