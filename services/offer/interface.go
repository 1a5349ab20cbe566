package offer

import (
	"context"

	bookingRepo "quickcourt/database/repository/booking"
	courtRepo "quickcourt/database/repository/court"
	facilityRepo "quickcourt/database/repository/facility"
	offerRepo "quickcourt/database/repository/offer"
	priceEventRepo "quickcourt/database/repository/priceevent"
	"quickcourt/models"
	"quickcourt/services/notification"
)

// OfferService runs price negotiation between a user and a facility owner.
type OfferService interface {
	Create(ctx context.Context, userID string, req models.OfferRequest) (*models.Offer, error)
	Act(ctx context.Context, actorID, offerID string, action models.OfferAction, req models.OfferActionRequest) (*models.Offer, error)
	ListForUser(ctx context.Context, userID string) ([]models.Offer, error)
	ListForFacility(ctx context.Context, ownerID, facilityID string) ([]models.Offer, error)
	Stats(ctx context.Context, ownerID, facilityID string) (*models.OfferStats, error)
}

type DefaultOfferService struct {
	Offers      offerRepo.OfferRepository
	Facilities  facilityRepo.FacilityRepository
	Courts      courtRepo.CourtRepository
	Bookings    bookingRepo.BookingRepository
	PriceEvents priceEventRepo.PriceEventRepository
	Notifier    notification.Notifier
}
