package memrepo

import (
	"context"
	"sort"
	"time"

	"quickcourt/database/repository"
	"quickcourt/models"

	"go.mongodb.org/mongo-driver/bson"
)

type Bookings struct {
	s *store[models.Booking]
	// Courts resolves sports for CountBySport; optional.
	Courts *Courts
	// FailCreate makes the next Create fail, for compensation tests.
	FailCreate error
}

func NewBookings() *Bookings {
	return &Bookings{s: newStore[models.Booking]()}
}

func (r *Bookings) EnsureIndexes(context.Context) error { return nil }

func (r *Bookings) Create(_ context.Context, b *models.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.FailCreate != nil {
		err := r.FailCreate
		r.FailCreate = nil
		return err
	}
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	r.s.put(b.ID, copyOf(b))
	return nil
}

func (r *Bookings) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyOf(b), nil
}

func statusIn(s models.BookingStatus, set []models.BookingStatus) bool {
	for _, x := range set {
		if x == s {
			return true
		}
	}
	return false
}

func (r *Bookings) Transition(_ context.Context, id string, from []models.BookingStatus, set bson.M) (*models.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.items[id]
	if !ok || !statusIn(b.Status, from) {
		return nil, repository.ErrConflict
	}
	set["updatedAt"] = time.Now()
	if err := applySet(b, set); err != nil {
		return nil, err
	}
	return copyOf(b), nil
}

func (r *Bookings) SetPrice(_ context.Context, id string, price float64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	b.Price = price
	return nil
}

func (r *Bookings) FindActiveOverlap(_ context.Context, courtID, date, start, end, excludeID string) ([]models.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Booking
	r.s.each(func(b *models.Booking) {
		if b.CourtID == courtID && b.Date == date && b.ID != excludeID &&
			statusIn(b.Status, models.ActiveBookingStatuses) &&
			b.StartTime < end && b.EndTime > start {
			out = append(out, *b)
		}
	})
	return out, nil
}

func matches(b *models.Booking, f models.BookingFilter) bool {
	if f.UserID != "" && b.UserID != f.UserID {
		return false
	}
	if f.FacilityIDs != nil {
		found := false
		for _, id := range f.FacilityIDs {
			if id == b.FacilityID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.CourtID != "" && b.CourtID != f.CourtID {
		return false
	}
	if f.Date != "" && b.Date != f.Date {
		return false
	}
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	return true
}

func (r *Bookings) List(_ context.Context, f models.BookingFilter) ([]models.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Booking{}
	r.s.each(func(b *models.Booking) {
		if matches(b, f) {
			out = append(out, *b)
		}
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].StartTime > out[j].StartTime
	})
	return out, nil
}

func (r *Bookings) HasBookingAtFacility(_ context.Context, userID, facilityID string, statuses []models.BookingStatus) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	found := false
	r.s.each(func(b *models.Booking) {
		if b.UserID == userID && b.FacilityID == facilityID && statusIn(b.Status, statuses) {
			found = true
		}
	})
	return found, nil
}

func (r *Bookings) AggregateByStatus(_ context.Context, f models.BookingFilter) ([]models.BookingAggregate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	agg := map[models.BookingStatus]*models.BookingAggregate{}
	r.s.each(func(b *models.Booking) {
		if !matches(b, f) {
			return
		}
		a, ok := agg[b.Status]
		if !ok {
			a = &models.BookingAggregate{Status: b.Status}
			agg[b.Status] = a
		}
		a.Count++
		a.Amount += b.Price
	})
	out := make([]models.BookingAggregate, 0, len(agg))
	for _, a := range agg {
		out = append(out, *a)
	}
	return out, nil
}

func (r *Bookings) DailyRevenue(_ context.Context, facilityIDs []string, since time.Time) ([]models.DailyAmount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byDate := map[string]*models.DailyAmount{}
	cutoff := since.Format(models.DateLayout)
	f := models.BookingFilter{FacilityIDs: facilityIDs}
	r.s.each(func(b *models.Booking) {
		if !matches(b, f) || b.Date < cutoff ||
			(b.Status != models.BookingConfirmed && b.Status != models.BookingCompleted) {
			return
		}
		d, ok := byDate[b.Date]
		if !ok {
			d = &models.DailyAmount{Date: b.Date}
			byDate[b.Date] = d
		}
		d.Amount += b.Price
		d.Count++
	})
	out := []models.DailyAmount{}
	for _, d := range byDate {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (r *Bookings) CountBySport(ctx context.Context) (map[string]int64, error) {
	r.s.mu.Lock()
	var courtIDs []string
	r.s.each(func(b *models.Booking) { courtIDs = append(courtIDs, b.CourtID) })
	r.s.mu.Unlock()

	out := map[string]int64{}
	if r.Courts == nil {
		return out, nil
	}
	for _, id := range courtIDs {
		if c, err := r.Courts.GetByID(ctx, id); err == nil {
			out[c.Sport]++
		}
	}
	return out, nil
}
