package memrepo

import (
	"context"
	"sort"
	"time"

	"quickcourt/database/repository"
	timeslotRepo "quickcourt/database/repository/timeslot"
	"quickcourt/models"

	"github.com/google/uuid"
)

type TimeSlots struct {
	s *store[models.TimeSlot]
}

func NewTimeSlots() *TimeSlots {
	return &TimeSlots{s: newStore[models.TimeSlot]()}
}

func slotID(k models.SlotKey) string {
	return k.CourtID + "|" + k.Date + "|" + k.Start + "|" + k.End
}

func keyOf(t models.TimeSlot) models.SlotKey {
	return models.SlotKey{CourtID: t.CourtID, Date: t.Date, Start: t.Start, End: t.End}
}

func (r *TimeSlots) EnsureIndexes(context.Context) error { return nil }

func (r *TimeSlots) GetByKey(_ context.Context, key models.SlotKey) (*models.TimeSlot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.items[slotID(key)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyOf(t), nil
}

func (r *TimeSlots) ListByCourtAndDate(_ context.Context, courtID, date string) ([]models.TimeSlot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.TimeSlot
	r.s.each(func(t *models.TimeSlot) {
		if t.CourtID == courtID && t.Date == date {
			out = append(out, *t)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out, nil
}

func (r *TimeSlots) Reserve(_ context.Context, slot models.TimeSlot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	id := slotID(keyOf(slot))
	now := time.Now()
	if t, ok := r.s.items[id]; ok {
		if !t.Available() {
			return timeslotRepo.ErrSlotTaken
		}
		t.IsBooked = true
		t.PriceSnapshot = slot.PriceSnapshot
		t.BookingID = slot.BookingID
		t.FacilityID = slot.FacilityID
		t.UpdatedAt = now
		return nil
	}
	slot.ID = uuid.New().String()
	slot.IsBooked = true
	slot.IsBlocked = false
	slot.CreatedAt = now
	slot.UpdatedAt = now
	r.s.put(id, &slot)
	return nil
}

func (r *TimeSlots) Release(_ context.Context, key models.SlotKey) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	id := slotID(key)
	if t, ok := r.s.items[id]; ok {
		t.IsBooked = false
		t.BookingID = ""
		t.UpdatedAt = time.Now()
		return nil
	}
	r.s.put(id, &models.TimeSlot{
		ID: uuid.New().String(), CourtID: key.CourtID, Date: key.Date, Start: key.Start, End: key.End,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	})
	return nil
}

func (r *TimeSlots) ReleaseHeldBy(_ context.Context, key models.SlotKey, bookingID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.items[slotID(key)]; ok && t.IsBooked && t.BookingID == bookingID {
		t.IsBooked = false
		t.BookingID = ""
		t.UpdatedAt = time.Now()
	}
	return nil
}

func (r *TimeSlots) SetBlocked(_ context.Context, slot models.TimeSlot, blocked bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	id := slotID(keyOf(slot))
	if t, ok := r.s.items[id]; ok {
		if blocked && t.IsBooked {
			return timeslotRepo.ErrSlotTaken
		}
		t.IsBlocked = blocked
		if blocked {
			t.PriceSnapshot = slot.PriceSnapshot
		}
		t.UpdatedAt = time.Now()
		return nil
	}
	slot.ID = uuid.New().String()
	slot.IsBlocked = blocked
	slot.IsBooked = false
	slot.CreatedAt = time.Now()
	slot.UpdatedAt = slot.CreatedAt
	r.s.put(id, &slot)
	return nil
}

// Put seeds a slot row as-is.
func (r *TimeSlots) Put(slot models.TimeSlot) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.put(slotID(keyOf(slot)), &slot)
}
