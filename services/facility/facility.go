package facility

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"quickcourt/database/repository"
	"quickcourt/models"
	"quickcourt/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// ListPublic only ever shows approved facilities.
func (s *DefaultFacilityService) ListPublic(ctx context.Context, filter models.FacilityFilter) (*models.Page[models.Facility], error) {
	filter.Status = models.FacilityApproved
	filter.OwnerID = ""
	return s.page(ctx, filter)
}

func (s *DefaultFacilityService) page(ctx context.Context, filter models.FacilityFilter) (*models.Page[models.Facility], error) {
	items, total, err := s.Facilities.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list facilities: %w", err)
	}
	_, page, limit := repository.Paginate(filter.Page, filter.Limit)
	return &models.Page[models.Facility]{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// Details returns a facility with its active courts. Unapproved facilities
// are visible to their owner and to admins only.
func (s *DefaultFacilityService) Details(ctx context.Context, id, viewerID string, viewerRole models.Role) (*models.FacilityDetails, error) {
	f, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.Status != models.FacilityApproved && f.OwnerID != viewerID && viewerRole != models.RoleAdmin {
		return nil, ErrFacilityNotFound
	}
	courts, err := s.Courts.ListByFacility(ctx, id, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list courts: %w", err)
	}
	return &models.FacilityDetails{Facility: *f, Courts: courts}, nil
}

// Create registers a facility awaiting admin approval.
func (s *DefaultFacilityService) Create(ctx context.Context, ownerID string, input models.FacilityInput) (*models.Facility, error) {
	name, address := strings.TrimSpace(input.Name), strings.TrimSpace(input.Address)
	if name == "" || address == "" {
		return nil, utils.BadRequest("name and address are required")
	}
	f := &models.Facility{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Name:        name,
		Description: input.Description,
		Address:     address,
		City:        strings.TrimSpace(input.City),
		Location:    input.Location,
		Sports:      normalizeSports(input.Sports),
		Amenities:   input.Amenities,
		Photos:      input.Photos,
		Status:      models.FacilityPending,
	}
	if err := s.Facilities.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("failed to create facility: %w", err)
	}
	utils.GetLogger().Info("facility submitted for review", zap.String("facilityId", f.ID), zap.String("ownerId", ownerID))
	s.publish(ctx, f, models.RoleRoom(models.RoleAdmin))
	return f, nil
}

func (s *DefaultFacilityService) Update(ctx context.Context, ownerID, id string, input models.FacilityInput) (*models.Facility, error) {
	if _, err := s.owned(ctx, ownerID, id); err != nil {
		return nil, err
	}
	setFields := bson.M{}
	if v := strings.TrimSpace(input.Name); v != "" {
		setFields["name"] = v
	}
	if v := strings.TrimSpace(input.Address); v != "" {
		setFields["address"] = v
	}
	if input.Description != "" {
		setFields["description"] = input.Description
	}
	if input.City != "" {
		setFields["city"] = strings.TrimSpace(input.City)
	}
	if input.Location != nil {
		setFields["location"] = input.Location
	}
	if input.Sports != nil {
		setFields["sports"] = normalizeSports(input.Sports)
	}
	if input.Amenities != nil {
		setFields["amenities"] = input.Amenities
	}
	if input.Photos != nil {
		setFields["photos"] = input.Photos
	}
	if len(setFields) > 0 {
		if err := s.Facilities.UpdateSetDocument(ctx, id, setFields); err != nil {
			return nil, fmt.Errorf("failed to update facility: %w", err)
		}
	}
	return s.load(ctx, id)
}

func (s *DefaultFacilityService) ListMine(ctx context.Context, ownerID string) ([]models.Facility, error) {
	items, _, err := s.Facilities.List(ctx, models.FacilityFilter{OwnerID: ownerID, Limit: 100})
	if err != nil {
		return nil, fmt.Errorf("failed to list facilities: %w", err)
	}
	return items, nil
}

// UploadPhoto stores an image and appends its URL to the facility.
func (s *DefaultFacilityService) UploadPhoto(ctx context.Context, ownerID, id string, file io.Reader, filename string) (*models.Facility, error) {
	if _, err := s.owned(ctx, ownerID, id); err != nil {
		return nil, err
	}
	res, err := s.Photos.Upload(ctx, file, filename, "quickcourt/facilities/"+id)
	if err != nil {
		return nil, err
	}
	if err := s.Facilities.AddPhoto(ctx, id, res.URL); err != nil {
		return nil, fmt.Errorf("failed to attach photo: %w", err)
	}
	return s.load(ctx, id)
}

func (s *DefaultFacilityService) ListByStatus(ctx context.Context, status models.FacilityStatus, page, limit int) (*models.Page[models.Facility], error) {
	switch status {
	case "", models.FacilityPending, models.FacilityApproved, models.FacilityRejected:
	default:
		return nil, ErrInvalidStatus
	}
	return s.page(ctx, models.FacilityFilter{Status: status, Page: page, Limit: limit})
}

func (s *DefaultFacilityService) Approve(ctx context.Context, id string) (*models.Facility, error) {
	return s.moderate(ctx, id, bson.M{"status": models.FacilityApproved, "rejectionReason": ""})
}

func (s *DefaultFacilityService) Reject(ctx context.Context, id, reason string) (*models.Facility, error) {
	return s.moderate(ctx, id, bson.M{"status": models.FacilityRejected, "rejectionReason": strings.TrimSpace(reason)})
}

func (s *DefaultFacilityService) moderate(ctx context.Context, id string, set bson.M) (*models.Facility, error) {
	if err := s.Facilities.UpdateSetDocument(ctx, id, set); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFacilityNotFound
		}
		return nil, fmt.Errorf("failed to update facility status: %w", err)
	}
	f, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Info("facility moderated", zap.String("facilityId", id), zap.String("status", string(f.Status)))
	s.publish(ctx, f, models.UserRoom(f.OwnerID))
	return f, nil
}

func (s *DefaultFacilityService) load(ctx context.Context, id string) (*models.Facility, error) {
	f, err := s.Facilities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFacilityNotFound
		}
		return nil, fmt.Errorf("failed to load facility: %w", err)
	}
	return f, nil
}

func (s *DefaultFacilityService) owned(ctx context.Context, ownerID, id string) (*models.Facility, error) {
	f, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return f, nil
}

func (s *DefaultFacilityService) publish(ctx context.Context, f *models.Facility, rooms ...string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Publish(ctx, models.EventFacilityUpdated, f, rooms...); err != nil {
		utils.GetLogger().Debug("facility notification failed", zap.String("facilityId", f.ID), zap.Error(err))
	}
}

// normalizeSports lower-cases and de-duplicates sport names.
func normalizeSports(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
