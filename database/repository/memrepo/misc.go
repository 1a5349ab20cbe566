package memrepo

import (
	"context"
	"time"

	"quickcourt/database/repository"
	couponRepo "quickcourt/database/repository/coupon"
	"quickcourt/models"
)

type Reviews struct {
	s *store[models.Review]
}

func NewReviews() *Reviews {
	return &Reviews{s: newStore[models.Review]()}
}

func (r *Reviews) EnsureIndexes(context.Context) error { return nil }

func (r *Reviews) Upsert(_ context.Context, rv *models.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rv.CreatedAt = time.Now()
	key := rv.FacilityID + "|" + rv.UserID
	if existing, ok := r.s.items[key]; ok {
		rv.ID = existing.ID
	}
	r.s.put(key, copyOf(rv))
	return nil
}

func (r *Reviews) ListByFacility(_ context.Context, facilityID string) ([]models.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Review{}
	r.s.each(func(rv *models.Review) {
		if rv.FacilityID == facilityID {
			out = append(out, *rv)
		}
	})
	return out, nil
}

func (r *Reviews) Summary(ctx context.Context, facilityID string) (float64, int, error) {
	reviews, _ := r.ListByFacility(ctx, facilityID)
	if len(reviews) == 0 {
		return 0, 0, nil
	}
	sum := 0
	for _, rv := range reviews {
		sum += rv.Rating
	}
	return float64(sum) / float64(len(reviews)), len(reviews), nil
}

type Coupons struct {
	s *store[models.Coupon]
}

func NewCoupons() *Coupons {
	return &Coupons{s: newStore[models.Coupon]()}
}

func (r *Coupons) EnsureIndexes(context.Context) error { return nil }

func (r *Coupons) Create(_ context.Context, c *models.Coupon) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.Code = couponRepo.NormalizeCode(c.Code)
	if _, ok := r.s.items[c.Code]; ok {
		return repository.ErrDuplicate
	}
	c.CreatedAt = time.Now()
	r.s.put(c.Code, copyOf(c))
	return nil
}

func (r *Coupons) GetByCode(_ context.Context, code string) (*models.Coupon, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.items[couponRepo.NormalizeCode(code)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyOf(c), nil
}

func (r *Coupons) ListByOwner(_ context.Context, ownerID string) ([]models.Coupon, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Coupon{}
	r.s.each(func(c *models.Coupon) {
		if c.OwnerID == ownerID {
			out = append(out, *c)
		}
	})
	return out, nil
}

func (r *Coupons) Deactivate(_ context.Context, ownerID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.items {
		if c.ID == id && c.OwnerID == ownerID {
			c.Active = false
			return nil
		}
	}
	return repository.ErrNotFound
}

type OwnerProfiles struct {
	s *store[models.OwnerProfile]
}

func NewOwnerProfiles() *OwnerProfiles {
	return &OwnerProfiles{s: newStore[models.OwnerProfile]()}
}

func (r *OwnerProfiles) Get(_ context.Context, userID string) (*models.OwnerProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.items[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyOf(p), nil
}

func (r *OwnerProfiles) Upsert(_ context.Context, p *models.OwnerProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.UpdatedAt = time.Now()
	r.s.put(p.UserID, copyOf(p))
	return nil
}

type PriceEvents struct {
	s *store[models.PriceEvent]
}

func NewPriceEvents() *PriceEvents {
	return &PriceEvents{s: newStore[models.PriceEvent]()}
}

func (r *PriceEvents) Record(_ context.Context, e *models.PriceEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e.CreatedAt = time.Now()
	r.s.put(e.ID, copyOf(e))
	return nil
}

func (r *PriceEvents) ListByCourt(_ context.Context, courtID string) ([]models.PriceEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.PriceEvent{}
	r.s.each(func(e *models.PriceEvent) {
		if e.CourtID == courtID {
			out = append(out, *e)
		}
	})
	return out, nil
}
