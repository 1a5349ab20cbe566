package review

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"quickcourt/database/repository"
	bookingRepo "quickcourt/database/repository/booking"
	facilityRepo "quickcourt/database/repository/facility"
	reviewRepo "quickcourt/database/repository/review"
	"quickcourt/models"
	"quickcourt/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrFacilityNotFound = utils.NotFound("facility not found")
	ErrNotEligible      = utils.Forbidden("only players with a booking at this facility can review it")
	ErrInvalidRating    = utils.BadRequest("rating must be between 1 and 5")
)

// reviewableStatuses are the booking states that earn a review.
var reviewableStatuses = []models.BookingStatus{models.BookingConfirmed, models.BookingCompleted}

type ReviewService interface {
	Submit(ctx context.Context, user *models.User, facilityID string, req models.ReviewRequest) (*models.Review, error)
	List(ctx context.Context, facilityID string) ([]models.Review, error)
}

type DefaultReviewService struct {
	Reviews    reviewRepo.ReviewRepository
	Bookings   bookingRepo.BookingRepository
	Facilities facilityRepo.FacilityRepository
}

// Submit stores or replaces the user's review and refreshes the facility's
// rating and review count.
func (s *DefaultReviewService) Submit(ctx context.Context, user *models.User, facilityID string, req models.ReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if _, err := s.Facilities.GetByID(ctx, facilityID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFacilityNotFound
		}
		return nil, fmt.Errorf("failed to load facility: %w", err)
	}
	ok, err := s.Bookings.HasBookingAtFacility(ctx, user.ID, facilityID, reviewableStatuses)
	if err != nil {
		return nil, fmt.Errorf("failed to check booking history: %w", err)
	}
	if !ok {
		return nil, ErrNotEligible
	}

	rv := &models.Review{
		ID:         uuid.New().String(),
		UserID:     user.ID,
		UserName:   user.Name,
		FacilityID: facilityID,
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
	}
	if err := s.Reviews.Upsert(ctx, rv); err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	avg, count, err := s.Reviews.Summary(ctx, facilityID)
	if err != nil {
		utils.GetLogger().Warn("failed to summarise reviews", zap.String("facilityId", facilityID), zap.Error(err))
		return rv, nil
	}
	if err := s.Facilities.SetRating(ctx, facilityID, math.Round(avg*10)/10, count); err != nil {
		utils.GetLogger().Warn("failed to update facility rating", zap.String("facilityId", facilityID), zap.Error(err))
	}
	return rv, nil
}

func (s *DefaultReviewService) List(ctx context.Context, facilityID string) ([]models.Review, error) {
	return s.Reviews.ListByFacility(ctx, facilityID)
}
