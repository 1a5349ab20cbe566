// Package owner holds the business tools of facility owners: their profile
// and their discount coupons.
package owner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"quickcourt/database/repository"
	couponRepo "quickcourt/database/repository/coupon"
	facilityRepo "quickcourt/database/repository/facility"
	ownerProfileRepo "quickcourt/database/repository/ownerprofile"
	"quickcourt/models"
	"quickcourt/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrCouponExists     = utils.Conflict("a coupon with this code already exists")
	ErrCouponNotFound   = utils.NotFound("coupon not found")
	ErrNotFacilityOwner = utils.Forbidden("forbidden")
	ErrCouponExpired    = utils.BadRequest("coupon expiry must be in the future")
)

type OwnerService interface {
	GetProfile(ctx context.Context, ownerID string) (*models.OwnerProfile, error)
	UpdateProfile(ctx context.Context, ownerID string, req models.OwnerProfileRequest) (*models.OwnerProfile, error)
	CreateCoupon(ctx context.Context, ownerID string, req models.CouponRequest) (*models.Coupon, error)
	ListCoupons(ctx context.Context, ownerID string) ([]models.Coupon, error)
	DeactivateCoupon(ctx context.Context, ownerID, couponID string) error
}

type DefaultOwnerService struct {
	Profiles   ownerProfileRepo.OwnerProfileRepository
	Coupons    couponRepo.CouponRepository
	Facilities facilityRepo.FacilityRepository
}

// GetProfile returns the stored profile, or an empty one for new owners.
func (s *DefaultOwnerService) GetProfile(ctx context.Context, ownerID string) (*models.OwnerProfile, error) {
	p, err := s.Profiles.Get(ctx, ownerID)
	if errors.Is(err, repository.ErrNotFound) {
		return &models.OwnerProfile{UserID: ownerID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load owner profile: %w", err)
	}
	return p, nil
}

func (s *DefaultOwnerService) UpdateProfile(ctx context.Context, ownerID string, req models.OwnerProfileRequest) (*models.OwnerProfile, error) {
	p := &models.OwnerProfile{
		UserID:       ownerID,
		BusinessName: strings.TrimSpace(req.BusinessName),
		Phone:        strings.TrimSpace(req.Phone),
		PayoutEmail:  strings.ToLower(strings.TrimSpace(req.PayoutEmail)),
		GSTNumber:    strings.ToUpper(strings.TrimSpace(req.GSTNumber)),
	}
	if p.BusinessName == "" {
		return nil, utils.BadRequest("businessName is required")
	}
	if err := s.Profiles.Upsert(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save owner profile: %w", err)
	}
	return p, nil
}

// CreateCoupon issues a coupon, optionally scoped to one of the owner's facilities.
func (s *DefaultOwnerService) CreateCoupon(ctx context.Context, ownerID string, req models.CouponRequest) (*models.Coupon, error) {
	code := couponRepo.NormalizeCode(req.Code)
	if code == "" {
		return nil, utils.BadRequest("code is required")
	}
	if req.PercentOff <= 0 || req.PercentOff > 100 {
		return nil, utils.BadRequest("percentOff must be between 0 and 100")
	}
	if req.ExpiresAt != nil && !req.ExpiresAt.After(time.Now()) {
		return nil, ErrCouponExpired
	}
	if req.FacilityID != "" {
		f, err := s.Facilities.GetByID(ctx, req.FacilityID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, utils.NotFound("facility not found")
			}
			return nil, fmt.Errorf("failed to load facility: %w", err)
		}
		if f.OwnerID != ownerID {
			return nil, ErrNotFacilityOwner
		}
	}

	c := &models.Coupon{
		ID:         uuid.New().String(),
		Code:       code,
		OwnerID:    ownerID,
		FacilityID: req.FacilityID,
		PercentOff: req.PercentOff,
		ExpiresAt:  req.ExpiresAt,
		Active:     true,
	}
	if err := s.Coupons.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCouponExists
		}
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}
	utils.GetLogger().Info("coupon issued", zap.String("code", c.Code), zap.String("ownerId", ownerID))
	return c, nil
}

func (s *DefaultOwnerService) ListCoupons(ctx context.Context, ownerID string) ([]models.Coupon, error) {
	return s.Coupons.ListByOwner(ctx, ownerID)
}

func (s *DefaultOwnerService) DeactivateCoupon(ctx context.Context, ownerID, couponID string) error {
	if err := s.Coupons.Deactivate(ctx, ownerID, couponID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCouponNotFound
		}
		return fmt.Errorf("failed to deactivate coupon: %w", err)
	}
	return nil
}
