package facility

import (
	"context"
	"io"

	courtRepo "quickcourt/database/repository/court"
	facilityRepo "quickcourt/database/repository/facility"
	priceEventRepo "quickcourt/database/repository/priceevent"
	"quickcourt/models"
	"quickcourt/services/notification"
	"quickcourt/services/storage"
)

type FacilityService interface {
	// Public catalog
	ListPublic(ctx context.Context, filter models.FacilityFilter) (*models.Page[models.Facility], error)
	Details(ctx context.Context, id, viewerID string, viewerRole models.Role) (*models.FacilityDetails, error)

	// Owner management
	Create(ctx context.Context, ownerID string, input models.FacilityInput) (*models.Facility, error)
	Update(ctx context.Context, ownerID, id string, input models.FacilityInput) (*models.Facility, error)
	ListMine(ctx context.Context, ownerID string) ([]models.Facility, error)
	UploadPhoto(ctx context.Context, ownerID, id string, file io.Reader, filename string) (*models.Facility, error)

	// Courts
	ListCourts(ctx context.Context, facilityID string) ([]models.Court, error)
	CreateCourt(ctx context.Context, ownerID string, input models.CourtInput) (*models.Court, error)
	UpdateCourt(ctx context.Context, ownerID, courtID string, input models.CourtInput) (*models.Court, error)
	DeactivateCourt(ctx context.Context, ownerID, courtID string) error
	PriceHistory(ctx context.Context, courtID string) ([]models.PriceEvent, error)

	// Moderation
	ListByStatus(ctx context.Context, status models.FacilityStatus, page, limit int) (*models.Page[models.Facility], error)
	Approve(ctx context.Context, id string) (*models.Facility, error)
	Reject(ctx context.Context, id, reason string) (*models.Facility, error)
}

// GridInvalidator drops a court's cached slot grids.
type GridInvalidator interface {
	InvalidateCourt(ctx context.Context, courtID string)
}

type DefaultFacilityService struct {
	Facilities  facilityRepo.FacilityRepository
	Courts      courtRepo.CourtRepository
	PriceEvents priceEventRepo.PriceEventRepository
	Photos      storage.PhotoStore
	Notifier    notification.Notifier
	// Grids may be nil when slot grids are not cached.
	Grids GridInvalidator
}
