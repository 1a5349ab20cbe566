package booking

import (
	"context"
	"fmt"

	"quickcourt/models"
)

// GetBooking returns one of the caller's bookings.
func (s *DefaultBookingService) GetBooking(ctx context.Context, userID, bookingID string) (*models.Booking, error) {
	b, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

func (s *DefaultBookingService) ListMine(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.Bookings.List(ctx, models.BookingFilter{UserID: userID})
}

// ListForOwner lists bookings across every facility the owner runs.
func (s *DefaultBookingService) ListForOwner(ctx context.Context, ownerID string) ([]models.Booking, error) {
	ids, err := s.Facilities.ListIDsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owner facilities: %w", err)
	}
	if len(ids) == 0 {
		return []models.Booking{}, nil
	}
	return s.Bookings.List(ctx, models.BookingFilter{FacilityIDs: ids})
}

// AvailableTimes renders the court's slot grid for date.
func (s *DefaultBookingService) AvailableTimes(ctx context.Context, courtID, date string) ([]models.AvailableTime, error) {
	grid, err := s.Slots.Grid(ctx, courtID, date)
	if err != nil {
		return nil, err
	}
	out := make([]models.AvailableTime, 0, len(grid))
	for _, t := range grid {
		out = append(out, models.AvailableTime{
			Start:     t.Start,
			End:       t.End,
			Price:     t.PriceSnapshot,
			Available: t.Available(),
		})
	}
	return out, nil
}
