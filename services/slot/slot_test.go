package slot

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"quickcourt/database/repository/memrepo"
	"quickcourt/models"
	"quickcourt/utils"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc      *DefaultSlotService
	slots    *memrepo.TimeSlots
	bookings *memrepo.Bookings
	court    *models.Court
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{
		slots:    memrepo.NewTimeSlots(),
		bookings: memrepo.NewBookings(),
		court: &models.Court{
			ID: "c1", FacilityID: "f1", Name: "Court 1", Sport: "badminton",
			PricePerHour: 500, OpenTime: "06:00", CloseTime: "22:00", IsActive: true,
		},
	}
	courts := memrepo.NewCourts()
	facilities := memrepo.NewFacilities()
	require.NoError(t, courts.Create(ctx, f.court))
	require.NoError(t, facilities.Create(ctx, &models.Facility{ID: "f1", OwnerID: "owner1", Status: models.FacilityApproved}))

	f.svc = &DefaultSlotService{
		Slots:      f.slots,
		Bookings:   f.bookings,
		Courts:     courts,
		Facilities: facilities,
	}
	return f
}

func key(start, end string) models.SlotKey {
	return models.SlotKey{CourtID: "c1", Date: "2025-06-01", Start: start, End: end}
}

func TestBuildGridSynthesizesDefaultHours(t *testing.T) {
	court := &models.Court{ID: "c1", FacilityID: "f1", PricePerHour: 300}
	grid := BuildGrid(court, "2025-06-01", nil)

	require.Len(t, grid, 16)
	assert.Equal(t, "06:00", grid[0].Start)
	assert.Equal(t, "22:00", grid[15].End)
	for _, s := range grid {
		assert.Equal(t, 300.0, s.PriceSnapshot)
		assert.True(t, s.Available())
	}
}

func TestBuildGridMergesPersistedRows(t *testing.T) {
	court := &models.Court{ID: "c1", PricePerHour: 300, OpenTime: "08:00", CloseTime: "11:00"}
	persisted := []models.TimeSlot{
		{CourtID: "c1", Date: "2025-06-01", Start: "09:00", End: "10:00", IsBooked: true, PriceSnapshot: 450},
	}
	grid := BuildGrid(court, "2025-06-01", persisted)

	require.Len(t, grid, 3)
	assert.False(t, grid[0].IsBooked)
	assert.True(t, grid[1].IsBooked)
	assert.Equal(t, 450.0, grid[1].PriceSnapshot)
}

func TestHourWindows(t *testing.T) {
	court := &models.Court{ID: "c1"}

	w, err := HourWindows(court, "2025-06-01", "10:00", 2)
	require.NoError(t, err)
	assert.Equal(t, []models.SlotKey{key("10:00", "11:00"), key("11:00", "12:00")}, w)

	_, err = HourWindows(court, "2025-06-01", "10:30", 1)
	assert.Error(t, err, "off-grid start")
	_, err = HourWindows(court, "2025-06-01", "21:00", 2)
	assert.Error(t, err, "past closing")
	_, err = HourWindows(court, "06/01/2025", "10:00", 1)
	assert.ErrorIs(t, err, ErrInvalidDate)
	_, err = HourWindows(court, "2025-06-01", "10:00", 0)
	assert.Error(t, err)
}

func TestHourWindowsRejectsOversizedDuration(t *testing.T) {
	court := &models.Court{ID: "c1"}

	for _, d := range []int{17, 1<<62 - 1} {
		var err error
		require.NotPanics(t, func() { _, err = HourWindows(court, "2025-06-01", "10:00", d) })
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Status)
	}

	w, err := HourWindows(court, "2025-06-01", "06:00", 16)
	require.NoError(t, err)
	assert.Len(t, w, 16)
}

func TestReserveFreeSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Reserve(ctx, f.court, key("10:00", "11:00"), 500, "b1"))

	row, err := f.slots.GetByKey(ctx, key("10:00", "11:00"))
	require.NoError(t, err)
	assert.True(t, row.IsBooked)
	assert.Equal(t, 500.0, row.PriceSnapshot)
	assert.Equal(t, "b1", row.BookingID)
}

func TestReserveBookedOrBlockedSlotFailsUnchanged(t *testing.T) {
	for _, seeded := range []models.TimeSlot{
		{CourtID: "c1", Date: "2025-06-01", Start: "10:00", End: "11:00", IsBooked: true, PriceSnapshot: 400, BookingID: "other"},
		{CourtID: "c1", Date: "2025-06-01", Start: "10:00", End: "11:00", IsBlocked: true, PriceSnapshot: 400},
	} {
		f := newFixture(t)
		ctx := context.Background()
		f.slots.Put(seeded)

		err := f.svc.Reserve(ctx, f.court, key("10:00", "11:00"), 999, "b2")
		assert.ErrorIs(t, err, ErrSlotUnavailable)

		row, err := f.slots.GetByKey(ctx, key("10:00", "11:00"))
		require.NoError(t, err)
		assert.Equal(t, seeded.IsBooked, row.IsBooked)
		assert.Equal(t, seeded.IsBlocked, row.IsBlocked)
		assert.Equal(t, 400.0, row.PriceSnapshot)
		assert.Equal(t, seeded.BookingID, row.BookingID)
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Release(ctx, key("12:00", "13:00")))
	require.NoError(t, f.svc.Release(ctx, key("12:00", "13:00")))
	row, err := f.slots.GetByKey(ctx, key("12:00", "13:00"))
	require.NoError(t, err)
	assert.False(t, row.IsBooked)
}

func TestBlockRefusedWhenActiveBookingOverlaps(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.bookings.Create(ctx, &models.Booking{
		ID: "b1", CourtID: "c1", Date: "2025-06-01", StartTime: "10:00", EndTime: "12:00", Status: models.BookingPending,
	}))

	_, err := f.svc.Block(ctx, "owner1", models.BlockSlotRequest{CourtID: "c1", Date: "2025-06-01", Start: "11:00", End: "12:00"})
	assert.ErrorIs(t, err, ErrActiveBooking)
	_, err = f.slots.GetByKey(ctx, key("11:00", "12:00"))
	assert.Error(t, err, "no row must be written")
}

func TestBlockAndUnblock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := models.BlockSlotRequest{CourtID: "c1", Date: "2025-06-01", Start: "14:00", End: "16:00"}

	rows, err := f.svc.Block(ctx, "owner1", req)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.True(t, r.IsBlocked)
		assert.Equal(t, 500.0, r.PriceSnapshot)
	}

	assert.ErrorIs(t, f.svc.Reserve(ctx, f.court, key("14:00", "15:00"), 500, "b1"), ErrSlotUnavailable)

	rows, err = f.svc.Unblock(ctx, "owner1", req)
	require.NoError(t, err)
	for _, r := range rows {
		assert.False(t, r.IsBlocked)
	}
	assert.NoError(t, f.svc.Reserve(ctx, f.court, key("14:00", "15:00"), 500, "b1"))
}

func TestBlockUndoesPartialWorkWhenSlotBooked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.slots.Put(models.TimeSlot{CourtID: "c1", Date: "2025-06-01", Start: "15:00", End: "16:00", IsBooked: true})

	_, err := f.svc.Block(ctx, "owner1", models.BlockSlotRequest{CourtID: "c1", Date: "2025-06-01", Start: "14:00", End: "16:00"})
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	row, err := f.slots.GetByKey(ctx, key("14:00", "15:00"))
	require.NoError(t, err)
	assert.False(t, row.IsBlocked)
}

func TestBlockRequiresFacilityOwner(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Block(context.Background(), "intruder", models.BlockSlotRequest{CourtID: "c1", Date: "2025-06-01", Start: "14:00", End: "15:00"})
	assert.ErrorIs(t, err, ErrNotFacilityOwner)
}

func TestGridServedFromCache(t *testing.T) {
	f := newFixture(t)
	db, mock := redismock.NewClientMock()
	f.svc.Cache = db

	cached := []models.TimeSlot{{CourtID: "c1", Date: "2025-06-01", Start: "06:00", End: "07:00", IsBlocked: true}}
	data, err := json.Marshal(cached)
	require.NoError(t, err)
	mock.ExpectGet(utils.SlotGridCachePrefix + "c1:2025-06-01").SetVal(string(data))

	grid, err := f.svc.Grid(context.Background(), "c1", "2025-06-01")
	require.NoError(t, err)
	require.Len(t, grid, 1)
	assert.True(t, grid[0].IsBlocked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidateDropsEachGridOnce(t *testing.T) {
	f := newFixture(t)
	db, mock := redismock.NewClientMock()
	f.svc.Cache = db

	// Reserve runs inside the caller's transaction and leaves the cache alone.
	require.NoError(t, f.svc.Reserve(context.Background(), f.court, key("10:00", "11:00"), 500, "b1"))

	mock.ExpectDel(utils.SlotGridCachePrefix + "c1:2025-06-01").SetVal(1)
	f.svc.Invalidate(context.Background(), key("10:00", "11:00"), key("11:00", "12:00"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidateCourtDropsEveryDate(t *testing.T) {
	f := newFixture(t)
	db, mock := redismock.NewClientMock()
	f.svc.Cache = db

	cached := []string{utils.SlotGridCachePrefix + "c1:2025-06-01", utils.SlotGridCachePrefix + "c1:2025-06-02"}
	mock.ExpectScan(0, utils.SlotGridCachePrefix+"c1:*", 100).SetVal(cached, 0)
	mock.ExpectDel(cached...).SetVal(2)

	f.svc.InvalidateCourt(context.Background(), "c1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureFree(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.slots.Put(models.TimeSlot{CourtID: "c1", Date: "2025-06-01", Start: "11:00", End: "12:00", IsBlocked: true})

	assert.NoError(t, f.svc.EnsureFree(ctx, f.court, []models.SlotKey{key("10:00", "11:00")}))
	assert.ErrorIs(t, f.svc.EnsureFree(ctx, f.court, []models.SlotKey{key("10:00", "11:00"), key("11:00", "12:00")}), ErrSlotUnavailable)
}
