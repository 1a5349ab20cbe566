package memrepo

import (
	"context"
	"sort"
	"strings"
	"time"

	"quickcourt/database/repository"
	"quickcourt/models"

	"go.mongodb.org/mongo-driver/bson"
)

type Courts struct {
	s *store[models.Court]
}

func NewCourts() *Courts {
	return &Courts{s: newStore[models.Court]()}
}

func (r *Courts) EnsureIndexes(context.Context) error { return nil }

func (r *Courts) Create(_ context.Context, c *models.Court) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.s.put(c.ID, copyOf(c))
	return nil
}

func (r *Courts) GetByID(_ context.Context, id string) (*models.Court, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyOf(c), nil
}

func (r *Courts) UpdateSetDocument(_ context.Context, id string, updateDoc bson.M) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	return applySet(c, updateDoc)
}

func (r *Courts) ListByFacility(_ context.Context, facilityID string, activeOnly bool) ([]models.Court, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Court{}
	r.s.each(func(c *models.Court) {
		if c.FacilityID == facilityID && (!activeOnly || c.IsActive) {
			out = append(out, *c)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Courts) CountByFacilities(_ context.Context, facilityIDs []string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	r.s.each(func(c *models.Court) {
		for _, id := range facilityIDs {
			if c.FacilityID == id && c.IsActive {
				n++
			}
		}
	})
	return n, nil
}

type Facilities struct {
	s *store[models.Facility]
}

func NewFacilities() *Facilities {
	return &Facilities{s: newStore[models.Facility]()}
}

func (r *Facilities) EnsureIndexes(context.Context) error { return nil }

func (r *Facilities) Create(_ context.Context, f *models.Facility) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f.CreatedAt = time.Now()
	f.UpdatedAt = f.CreatedAt
	r.s.put(f.ID, copyOf(f))
	return nil
}

func (r *Facilities) GetByID(_ context.Context, id string) (*models.Facility, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyOf(f), nil
}

func (r *Facilities) UpdateSetDocument(_ context.Context, id string, updateDoc bson.M) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	return applySet(f, updateDoc)
}

func (r *Facilities) AddPhoto(_ context.Context, id, url string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	f.Photos = append(f.Photos, url)
	return nil
}

func (r *Facilities) SetRating(ctx context.Context, id string, rating float64, count int) error {
	return r.UpdateSetDocument(ctx, id, bson.M{"rating": rating, "reviewCount": count})
}

func containsFold(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

func (r *Facilities) List(_ context.Context, f models.FacilityFilter) ([]models.Facility, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []models.Facility
	q := strings.ToLower(f.Query)
	r.s.each(func(x *models.Facility) {
		switch {
		case f.Status != "" && x.Status != f.Status:
		case f.OwnerID != "" && x.OwnerID != f.OwnerID:
		case f.Sport != "" && !containsFold(x.Sports, f.Sport):
		case f.City != "" && !strings.EqualFold(x.City, f.City):
		case q != "" && !strings.Contains(strings.ToLower(x.Name+" "+x.Address+" "+x.City), q):
		default:
			all = append(all, *x)
		}
	})
	skip, _, limit := repository.Paginate(f.Page, f.Limit)
	total := int64(len(all))
	out := []models.Facility{}
	for i := int(skip); i < len(all) && len(out) < limit; i++ {
		out = append(out, all[i])
	}
	return out, total, nil
}

func (r *Facilities) ListIDsByOwner(_ context.Context, ownerID string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := []string{}
	r.s.each(func(x *models.Facility) {
		if x.OwnerID == ownerID {
			ids = append(ids, x.ID)
		}
	})
	return ids, nil
}

func (r *Facilities) CountByStatus(context.Context) (map[models.FacilityStatus]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[models.FacilityStatus]int64{}
	r.s.each(func(x *models.Facility) { out[x.Status]++ })
	return out, nil
}
