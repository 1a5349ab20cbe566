package slot

import (
	"context"

	bookingRepo "quickcourt/database/repository/booking"
	courtRepo "quickcourt/database/repository/court"
	facilityRepo "quickcourt/database/repository/facility"
	timeslotRepo "quickcourt/database/repository/timeslot"
	"quickcourt/models"

	"github.com/go-redis/redis/v8"
)

// SlotService owns the hourly slot grid of every court.
type SlotService interface {
	Grid(ctx context.Context, courtID, date string) ([]models.TimeSlot, error)
	// Reserve books one hourly slot with a single conditional write. It runs
	// inside the caller's transaction, so the caller invalidates the cached
	// grid once the transaction has returned.
	Reserve(ctx context.Context, court *models.Court, key models.SlotKey, price float64, bookingID string) error
	// Release frees a slot; the cached grid is left to the caller like Reserve.
	Release(ctx context.Context, key models.SlotKey) error
	// ReleaseHeldBy undoes a reservation made for bookingID and nothing else.
	ReleaseHeldBy(ctx context.Context, key models.SlotKey, bookingID string) error
	// EnsureFree fails with ErrSlotUnavailable when any window is booked or blocked.
	EnsureFree(ctx context.Context, court *models.Court, windows []models.SlotKey) error
	Block(ctx context.Context, ownerID string, req models.BlockSlotRequest) ([]models.TimeSlot, error)
	Unblock(ctx context.Context, ownerID string, req models.BlockSlotRequest) ([]models.TimeSlot, error)
	// Invalidate drops the cached grids the keys fall on.
	Invalidate(ctx context.Context, keys ...models.SlotKey)
	// InvalidateCourt drops every cached grid of a court.
	InvalidateCourt(ctx context.Context, courtID string)
}

// DefaultSlotService is the production implementation.
type DefaultSlotService struct {
	Slots      timeslotRepo.TimeSlotRepository
	Bookings   bookingRepo.BookingRepository
	Courts     courtRepo.CourtRepository
	Facilities facilityRepo.FacilityRepository
	// Cache holds rendered grids; nil disables caching.
	Cache *redis.Client
}
