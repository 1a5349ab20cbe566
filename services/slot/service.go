package slot

import (
	"context"
	"errors"
	"fmt"

	"quickcourt/database/repository"
	timeslotRepo "quickcourt/database/repository/timeslot"
	"quickcourt/models"
	"quickcourt/utils"

	"go.uber.org/zap"
)

func (s *DefaultSlotService) Grid(ctx context.Context, courtID, date string) ([]models.TimeSlot, error) {
	if !models.ValidDate(date) {
		return nil, ErrInvalidDate
	}
	if grid, ok := s.cachedGrid(ctx, courtID, date); ok {
		return grid, nil
	}

	court, err := s.Courts.GetByID(ctx, courtID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, fmt.Errorf("failed to load court: %w", err)
	}
	persisted, err := s.Slots.ListByCourtAndDate(ctx, courtID, date)
	if err != nil {
		return nil, err
	}

	grid := BuildGrid(court, date, persisted)
	s.storeGrid(ctx, courtID, date, grid)
	return grid, nil
}

func (s *DefaultSlotService) Reserve(ctx context.Context, court *models.Court, key models.SlotKey, price float64, bookingID string) error {
	err := s.Slots.Reserve(ctx, models.TimeSlot{
		CourtID:       key.CourtID,
		FacilityID:    court.FacilityID,
		Date:          key.Date,
		Start:         key.Start,
		End:           key.End,
		PriceSnapshot: price,
		BookingID:     bookingID,
	})
	if errors.Is(err, timeslotRepo.ErrSlotTaken) {
		return ErrSlotUnavailable
	}
	return err
}

func (s *DefaultSlotService) Release(ctx context.Context, key models.SlotKey) error {
	return s.Slots.Release(ctx, key)
}

func (s *DefaultSlotService) ReleaseHeldBy(ctx context.Context, key models.SlotKey, bookingID string) error {
	if err := s.Slots.ReleaseHeldBy(ctx, key, bookingID); err != nil {
		return err
	}
	s.invalidate(ctx, key.CourtID, key.Date)
	return nil
}

func (s *DefaultSlotService) EnsureFree(ctx context.Context, court *models.Court, windows []models.SlotKey) error {
	if len(windows) == 0 {
		return nil
	}
	rows, err := s.Slots.ListByCourtAndDate(ctx, court.ID, windows[0].Date)
	if err != nil {
		return err
	}
	taken := make(map[string]bool, len(rows))
	for _, r := range rows {
		if !r.Available() {
			taken[r.Start+"-"+r.End] = true
		}
	}
	for _, w := range windows {
		if taken[w.Start+"-"+w.End] {
			return ErrSlotUnavailable
		}
	}
	return nil
}

// ownedCourt loads a court and checks that ownerID owns its facility.
func (s *DefaultSlotService) ownedCourt(ctx context.Context, ownerID, courtID string) (*models.Court, error) {
	court, err := s.Courts.GetByID(ctx, courtID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}
	facility, err := s.Facilities.GetByID(ctx, court.FacilityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load facility: %w", err)
	}
	if facility.OwnerID != ownerID {
		return nil, ErrNotFacilityOwner
	}
	return court, nil
}

// Block marks every hour of the range blocked. It refuses when an active
// booking overlaps, and undoes partial work if a slot was booked meanwhile.
func (s *DefaultSlotService) Block(ctx context.Context, ownerID string, req models.BlockSlotRequest) ([]models.TimeSlot, error) {
	court, err := s.ownedCourt(ctx, ownerID, req.CourtID)
	if err != nil {
		return nil, err
	}
	windows, err := RangeWindows(court, req.Date, req.Start, req.End)
	if err != nil {
		return nil, err
	}

	first, last := windows[0], windows[len(windows)-1]
	active, err := s.Bookings.FindActiveOverlap(ctx, court.ID, req.Date, first.Start, last.End, "")
	if err != nil {
		return nil, err
	}
	if len(active) > 0 {
		return nil, ErrActiveBooking
	}

	defer s.invalidate(ctx, court.ID, req.Date)
	for i, w := range windows {
		err := s.Slots.SetBlocked(ctx, slotFor(court, w), true)
		if err == nil {
			continue
		}
		for _, done := range windows[:i] {
			if uerr := s.Slots.SetBlocked(ctx, slotFor(court, done), false); uerr != nil {
				utils.GetLogger().Error("failed to undo partial block", zap.String("courtId", court.ID), zap.String("start", done.Start), zap.Error(uerr))
			}
		}
		if errors.Is(err, timeslotRepo.ErrSlotTaken) {
			return nil, ErrSlotUnavailable
		}
		return nil, err
	}
	return s.rowsFor(ctx, windows)
}

func (s *DefaultSlotService) Unblock(ctx context.Context, ownerID string, req models.BlockSlotRequest) ([]models.TimeSlot, error) {
	court, err := s.ownedCourt(ctx, ownerID, req.CourtID)
	if err != nil {
		return nil, err
	}
	windows, err := RangeWindows(court, req.Date, req.Start, req.End)
	if err != nil {
		return nil, err
	}
	defer s.invalidate(ctx, court.ID, req.Date)
	for _, w := range windows {
		if err := s.Slots.SetBlocked(ctx, slotFor(court, w), false); err != nil {
			return nil, err
		}
	}
	return s.rowsFor(ctx, windows)
}

func slotFor(court *models.Court, w models.SlotKey) models.TimeSlot {
	return models.TimeSlot{
		CourtID:       w.CourtID,
		FacilityID:    court.FacilityID,
		Date:          w.Date,
		Start:         w.Start,
		End:           w.End,
		PriceSnapshot: court.PricePerHour,
	}
}

func (s *DefaultSlotService) rowsFor(ctx context.Context, windows []models.SlotKey) ([]models.TimeSlot, error) {
	rows := make([]models.TimeSlot, 0, len(windows))
	for _, w := range windows {
		row, err := s.Slots.GetByKey(ctx, w)
		if err != nil {
			return nil, err
		}
		rows = append(rows, *row)
	}
	return rows, nil
}
