package admin

import (
	"context"
	"fmt"

	"quickcourt/models"
	"quickcourt/utils"

	"go.uber.org/zap"
)

func (s *DefaultAdminService) ListFacilities(ctx context.Context, status models.FacilityStatus, page, limit int) (*models.Page[models.Facility], error) {
	if status == "" {
		status = models.FacilityPending
	}
	return s.Facilities.ListByStatus(ctx, status, page, limit)
}

func (s *DefaultAdminService) ApproveFacility(ctx context.Context, adminID, facilityID string) (*models.Facility, error) {
	f, err := s.Facilities.Approve(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Info("facility approved",
		zap.String("adminID", adminID), zap.String("facilityID", facilityID))
	return f, nil
}

func (s *DefaultAdminService) RejectFacility(ctx context.Context, adminID, facilityID, reason string) (*models.Facility, error) {
	f, err := s.Facilities.Reject(ctx, facilityID, reason)
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Info("facility rejected",
		zap.String("adminID", adminID), zap.String("facilityID", facilityID), zap.String("reason", reason))
	return f, nil
}

func (s *DefaultAdminService) ListUsers(ctx context.Context, filter models.UserFilter) (*models.Page[models.User], error) {
	return s.Users.ListUsers(ctx, filter)
}

// SetBanned refuses to act on the caller's own account before delegating.
func (s *DefaultAdminService) SetBanned(ctx context.Context, adminID, userID string, banned bool) (*models.User, error) {
	if adminID == userID && banned {
		return nil, utils.Forbidden("forbidden")
	}
	u, err := s.Users.SetBanned(ctx, userID, banned)
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Info("admin changed ban state",
		zap.String("adminID", adminID), zap.String("userID", userID), zap.Bool("banned", banned))
	return u, nil
}

// UserBookings lists every booking of a user, newest first.
func (s *DefaultAdminService) UserBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	if _, err := s.Users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	bookings, err := s.Bookings.List(ctx, models.BookingFilter{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user bookings: %w", err)
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}
