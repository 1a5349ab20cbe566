package facility

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

func (s *DefaultFacilityService) ListCourts(ctx context.Context, facilityID string) ([]models.Court, error) {
	return s.Courts.ListByFacility(ctx, facilityID, true)
}

func (s *DefaultFacilityService) CreateCourt(ctx context.Context, ownerID string, input models.CourtInput) (*models.Court, error) {
	f, err := s.owned(ctx, ownerID, input.FacilityID)
	if err != nil {
		return nil, err
	}
	name, sport := strings.TrimSpace(input.Name), strings.ToLower(strings.TrimSpace(input.Sport))
	if name == "" || sport == "" {
		return nil, utils.BadRequest("name and sport are required")
	}
	if input.PricePerHour == nil || *input.PricePerHour <= 0 {
		return nil, utils.BadRequest("pricePerHour must be positive")
	}
	openAt, closeAt, err := openingHours(input.OpenTime, input.CloseTime, models.DefaultOpenTime, models.DefaultCloseTime)
	if err != nil {
		return nil, err
	}

	c := &models.Court{
		ID:           uuid.New().String(),
		FacilityID:   f.ID,
		Name:         name,
		Sport:        sport,
		PricePerHour: *input.PricePerHour,
		OpenTime:     openAt,
		CloseTime:    closeAt,
		IsActive:     true,
	}
	if err := s.Courts.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create court: %w", err)
	}

	// keep the facility's sport list searchable
	if !contains(f.Sports, sport) {
		if err := s.Facilities.UpdateSetDocument(ctx, f.ID, bson.M{"sports": append(f.Sports, sport)}); err != nil {
			utils.GetLogger().Warn("failed to extend facility sports", zap.String("facilityId", f.ID), zap.Error(err))
		}
	}
	return c, nil
}

// UpdateCourt applies partial changes; a price change is logged as a PriceEvent.
func (s *DefaultFacilityService) UpdateCourt(ctx context.Context, ownerID, courtID string, input models.CourtInput) (*models.Court, error) {
	c, err := s.ownedCourt(ctx, ownerID, courtID)
	if err != nil {
		return nil, err
	}
	setFields := bson.M{}
	if v := strings.TrimSpace(input.Name); v != "" {
		setFields["name"] = v
	}
	if v := strings.ToLower(strings.TrimSpace(input.Sport)); v != "" {
		setFields["sport"] = v
	}
	if input.OpenTime != "" || input.CloseTime != "" {
		curOpen, curClose := c.Hours()
		openAt, closeAt, err := openingHours(input.OpenTime, input.CloseTime, models.FormatClock(curOpen), models.FormatClock(curClose))
		if err != nil {
			return nil, err
		}
		setFields["openTime"], setFields["closeTime"] = openAt, closeAt
	}
	priceChanged := false
	if input.PricePerHour != nil {
		if *input.PricePerHour <= 0 {
			return nil, utils.BadRequest("pricePerHour must be positive")
		}
		if *input.PricePerHour != c.PricePerHour {
			setFields["pricePerHour"] = *input.PricePerHour
			priceChanged = true
		}
	}
	if len(setFields) == 0 {
		return c, nil
	}
	setFields["updatedAt"] = time.Now()
	if err := s.Courts.UpdateSetDocument(ctx, courtID, setFields); err != nil {
		return nil, fmt.Errorf("failed to update court: %w", err)
	}
	s.invalidateGrids(ctx, courtID)

	if priceChanged {
		event := &models.PriceEvent{
			ID:         uuid.New().String(),
			CourtID:    c.ID,
			FacilityID: c.FacilityID,
			OldPrice:   c.PricePerHour,
			NewPrice:   *input.PricePerHour,
			Source:     models.PriceSourceCourtUpdate,
		}
		if err := s.PriceEvents.Record(ctx, event); err != nil {
			utils.GetLogger().Warn("failed to record court price change", zap.String("courtId", c.ID), zap.Error(err))
		}
	}
	return s.Courts.GetByID(ctx, courtID)
}

// DeactivateCourt hides a court from booking. Courts are never deleted.
func (s *DefaultFacilityService) DeactivateCourt(ctx context.Context, ownerID, courtID string) error {
	if _, err := s.ownedCourt(ctx, ownerID, courtID); err != nil {
		return err
	}
	if err := s.Courts.UpdateSetDocument(ctx, courtID, bson.M{"isActive": false, "updatedAt": time.Now()}); err != nil {
		return fmt.Errorf("failed to deactivate court: %w", err)
	}
	s.invalidateGrids(ctx, courtID)
	return nil
}

func (s *DefaultFacilityService) invalidateGrids(ctx context.Context, courtID string) {
	if s.Grids != nil {
		s.Grids.InvalidateCourt(ctx, courtID)
	}
}

func (s *DefaultFacilityService) PriceHistory(ctx context.Context, courtID string) ([]models.PriceEvent, error) {
	if _, err := s.court(ctx, courtID); err != nil {
		return nil, err
	}
	return s.PriceEvents.ListByCourt(ctx, courtID)
}

func (s *DefaultFacilityService) court(ctx context.Context, courtID string) (*models.Court, error) {
	c, err := s.Courts.GetByID(ctx, courtID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, fmt.Errorf("failed to load court: %w", err)
	}
	return c, nil
}

func (s *DefaultFacilityService) ownedCourt(ctx context.Context, ownerID, courtID string) (*models.Court, error) {
	c, err := s.court(ctx, courtID)
	if err != nil {
		return nil, err
	}
	if _, err := s.owned(ctx, ownerID, c.FacilityID); err != nil {
		return nil, err
	}
	return c, nil
}

// openingHours validates an HH:MM pair, filling blanks from the fallbacks.
func openingHours(openAt, closeAt, fallbackOpen, fallbackClose string) (string, string, error) {
	if openAt == "" {
		openAt = fallbackOpen
	}
	if closeAt == "" {
		closeAt = fallbackClose
	}
	openMin, err := models.ParseClock(openAt)
	if err != nil {
		return "", "", utils.BadRequest(err.Error())
	}
	closeMin, err := models.ParseClock(closeAt)
	if err != nil {
		return "", "", utils.BadRequest(err.Error())
	}
	if closeMin-openMin < 60 {
		return "", "", utils.BadRequest("court must be open for at least one hour")
	}
	return models.FormatClock(openMin), models.FormatClock(closeMin), nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
