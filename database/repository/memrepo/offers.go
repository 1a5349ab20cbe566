package memrepo

import (
	"context"
	"time"

	"quickcourt/database/repository"
	"quickcourt/models"

	"go.mongodb.org/mongo-driver/bson"
)

type Offers struct {
	s *store[models.Offer]
}

func NewOffers() *Offers {
	return &Offers{s: newStore[models.Offer]()}
}

func (r *Offers) EnsureIndexes(context.Context) error { return nil }

func (r *Offers) Create(_ context.Context, o *models.Offer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	r.s.put(o.ID, copyOf(o))
	return nil
}

func (r *Offers) GetByID(_ context.Context, id string) (*models.Offer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyOf(o), nil
}

func (r *Offers) Transition(_ context.Context, id string, from models.OfferStatus, set bson.M) (*models.Offer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.items[id]
	if !ok || o.Status != from {
		return nil, repository.ErrConflict
	}
	set["updatedAt"] = time.Now()
	if err := applySet(o, set); err != nil {
		return nil, err
	}
	return copyOf(o), nil
}

func (r *Offers) filter(keep func(*models.Offer) bool) []models.Offer {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Offer{}
	r.s.each(func(o *models.Offer) {
		if keep(o) {
			out = append(out, *o)
		}
	})
	return out
}

func (r *Offers) ListByUser(_ context.Context, userID string) ([]models.Offer, error) {
	return r.filter(func(o *models.Offer) bool { return o.UserID == userID }), nil
}

func (r *Offers) ListByFacility(_ context.Context, facilityID string) ([]models.Offer, error) {
	return r.filter(func(o *models.Offer) bool { return o.FacilityID == facilityID }), nil
}

func (r *Offers) Stats(_ context.Context, facilityID string) (*models.OfferStats, error) {
	stats := &models.OfferStats{ByStatus: map[models.OfferStatus]int64{}}
	var discount float64
	for _, o := range r.filter(func(o *models.Offer) bool { return o.FacilityID == facilityID }) {
		stats.ByStatus[o.Status]++
		stats.Total++
		discount += o.OriginalPrice - o.OfferedPrice
	}
	if stats.Total > 0 {
		stats.AverageDiscount = discount / float64(stats.Total)
	}
	return stats, nil
}
