package offer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quickcourt/database/repository"
	"quickcourt/models"
	"quickcourt/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Create opens a pending offer and tells every owner about it.
func (s *DefaultOfferService) Create(ctx context.Context, userID string, req models.OfferRequest) (*models.Offer, error) {
	if req.OfferedPrice <= 0 {
		return nil, ErrInvalidPrice
	}
	facility, err := s.facility(ctx, req.FacilityID)
	if err != nil {
		return nil, err
	}
	court, err := s.Courts.GetByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourtMismatch
		}
		return nil, fmt.Errorf("failed to load court: %w", err)
	}
	if court.FacilityID != facility.ID {
		return nil, ErrCourtMismatch
	}
	if !models.ValidDate(req.Date) {
		return nil, utils.BadRequest("date must be YYYY-MM-DD")
	}
	startMin, err := models.ParseClock(req.StartTime)
	if err != nil {
		return nil, utils.BadRequest(err.Error())
	}
	endMin, err := models.ParseClock(req.EndTime)
	if err != nil {
		return nil, utils.BadRequest(err.Error())
	}
	if endMin <= startMin {
		return nil, utils.BadRequest("end time must be after start time")
	}

	original := req.OriginalPrice
	if req.BookingID != "" {
		b, err := s.Bookings.GetByID(ctx, req.BookingID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrBookingNotOwned
			}
			return nil, fmt.Errorf("failed to load booking: %w", err)
		}
		if b.UserID != userID || b.CourtID != court.ID {
			return nil, ErrBookingNotOwned
		}
		original = b.Price
	}
	if original <= 0 {
		original = court.PricePerHour * float64(endMin-startMin) / 60
	}

	o := &models.Offer{
		ID:            uuid.New().String(),
		UserID:        userID,
		FacilityID:    facility.ID,
		CourtID:       court.ID,
		BookingID:     req.BookingID,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		OriginalPrice: original,
		OfferedPrice:  req.OfferedPrice,
		Message:       req.Message,
		Status:        models.OfferPending,
	}
	if err := s.Offers.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}

	s.publish(ctx, models.EventOfferNew, o, models.RoleRoom(models.RoleOwner), models.UserRoom(userID))
	return o, nil
}

// Act applies accept, reject or counter. The facility owner acts on pending
// offers; a countered offer is accepted or rejected once by its creator.
func (s *DefaultOfferService) Act(ctx context.Context, actorID, offerID string, action models.OfferAction, req models.OfferActionRequest) (*models.Offer, error) {
	o, err := s.Offers.GetByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, fmt.Errorf("failed to load offer: %w", err)
	}
	facility, err := s.facility(ctx, o.FacilityID)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	switch o.Status {
	case models.OfferPending:
		if actorID != facility.OwnerID {
			return nil, ErrNotAllowed
		}
		switch action {
		case models.OfferActionAccept:
			set["status"] = models.OfferAccepted
		case models.OfferActionReject:
			set["status"] = models.OfferRejected
		case models.OfferActionCounter:
			if req.CounterPrice <= 0 {
				return nil, ErrInvalidCounter
			}
			set["status"] = models.OfferCountered
			set["counterPrice"] = req.CounterPrice
		default:
			return nil, ErrUnknownAction
		}
	case models.OfferCountered:
		if actorID != o.UserID {
			return nil, ErrNotAllowed
		}
		switch action {
		case models.OfferActionAccept:
			set["status"] = models.OfferAccepted
			if o.CounterPrice != nil {
				set["offeredPrice"] = *o.CounterPrice
			}
		case models.OfferActionReject:
			set["status"] = models.OfferRejected
		case models.OfferActionCounter:
			return nil, ErrOfferClosed
		default:
			return nil, ErrUnknownAction
		}
	default:
		return nil, ErrOfferClosed
	}

	updated, err := s.Offers.Transition(ctx, o.ID, o.Status, set)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrOfferClosed
		}
		return nil, fmt.Errorf("failed to update offer: %w", err)
	}

	if updated.Status == models.OfferAccepted && updated.BookingID != "" {
		if err := s.applyAgreedPrice(ctx, updated); err != nil {
			return nil, err
		}
	}

	utils.GetLogger().Info("offer updated",
		zap.String("offerId", updated.ID),
		zap.String("action", string(action)),
		zap.String("status", string(updated.Status)))
	s.publish(ctx, models.EventOfferUpdate, updated, models.UserRoom(updated.UserID), models.UserRoom(facility.OwnerID))
	return updated, nil
}

// applyAgreedPrice rewrites the bound booking's price and logs the change.
func (s *DefaultOfferService) applyAgreedPrice(ctx context.Context, o *models.Offer) error {
	old := o.OriginalPrice
	if b, err := s.Bookings.GetByID(ctx, o.BookingID); err == nil {
		old = b.Price
	}
	if err := s.Bookings.SetPrice(ctx, o.BookingID, o.OfferedPrice); err != nil {
		return fmt.Errorf("failed to apply agreed price to booking: %w", err)
	}
	event := &models.PriceEvent{
		ID:         uuid.New().String(),
		CourtID:    o.CourtID,
		FacilityID: o.FacilityID,
		OldPrice:   old,
		NewPrice:   o.OfferedPrice,
		Source:     models.PriceSourceOfferAccepted,
		RefID:      o.ID,
		CreatedAt:  time.Now(),
	}
	if err := s.PriceEvents.Record(ctx, event); err != nil {
		utils.GetLogger().Warn("failed to record price event", zap.String("offerId", o.ID), zap.Error(err))
	}
	return nil
}

func (s *DefaultOfferService) ListForUser(ctx context.Context, userID string) ([]models.Offer, error) {
	return s.Offers.ListByUser(ctx, userID)
}

func (s *DefaultOfferService) ListForFacility(ctx context.Context, ownerID, facilityID string) ([]models.Offer, error) {
	if _, err := s.ownedFacility(ctx, ownerID, facilityID); err != nil {
		return nil, err
	}
	return s.Offers.ListByFacility(ctx, facilityID)
}

func (s *DefaultOfferService) Stats(ctx context.Context, ownerID, facilityID string) (*models.OfferStats, error) {
	if _, err := s.ownedFacility(ctx, ownerID, facilityID); err != nil {
		return nil, err
	}
	return s.Offers.Stats(ctx, facilityID)
}

func (s *DefaultOfferService) facility(ctx context.Context, id string) (*models.Facility, error) {
	f, err := s.Facilities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFacilityNotFound
		}
		return nil, fmt.Errorf("failed to load facility: %w", err)
	}
	return f, nil
}

func (s *DefaultOfferService) ownedFacility(ctx context.Context, ownerID, id string) (*models.Facility, error) {
	f, err := s.facility(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.OwnerID != ownerID {
		return nil, ErrNotAllowed
	}
	return f, nil
}

func (s *DefaultOfferService) publish(ctx context.Context, event string, o *models.Offer, rooms ...string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Publish(ctx, event, o, rooms...); err != nil {
		utils.GetLogger().Debug("offer notification failed", zap.String("offerId", o.ID), zap.Error(err))
	}
}
