package stats

import (
	"context"
	"testing"
	"time"

	"quickcourt/database/repository/memrepo"
	"quickcourt/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(t *testing.T) *DefaultStatsService {
	t.Helper()
	ctx := context.Background()
	users := memrepo.NewUsers()
	facs := memrepo.NewFacilities()
	courts := memrepo.NewCourts()
	bookings := memrepo.NewBookings()
	bookings.Courts = courts

	score := 72
	require.NoError(t, users.Create(ctx, &models.User{ID: "u1", Email: "u1@qc.test", Role: models.RoleUser, ReliabilityScore: &score, Cancellations: 1}))
	require.NoError(t, users.Create(ctx, &models.User{ID: "u2", Email: "u2@qc.test", Role: models.RoleUser, Banned: true}))
	require.NoError(t, users.Create(ctx, &models.User{ID: "o1", Email: "o1@qc.test", Role: models.RoleOwner}))

	require.NoError(t, facs.Create(ctx, &models.Facility{ID: "f1", OwnerID: "o1", Status: models.FacilityApproved}))
	require.NoError(t, facs.Create(ctx, &models.Facility{ID: "f2", OwnerID: "o1", Status: models.FacilityPending}))
	require.NoError(t, courts.Create(ctx, &models.Court{ID: "c1", FacilityID: "f1", Sport: "badminton", IsActive: true}))
	require.NoError(t, courts.Create(ctx, &models.Court{ID: "c2", FacilityID: "f1", Sport: "tennis", IsActive: true}))

	for _, b := range []*models.Booking{
		{ID: "b1", UserID: "u1", FacilityID: "f1", CourtID: "c1", Date: "2025-06-01", Price: 400, Status: models.BookingConfirmed},
		{ID: "b2", UserID: "u1", FacilityID: "f1", CourtID: "c1", Date: "2025-06-02", Price: 500, Status: models.BookingCompleted},
		{ID: "b3", UserID: "u1", FacilityID: "f1", CourtID: "c2", Date: "2025-06-02", Price: 300, Status: models.BookingCancelled},
		{ID: "b4", UserID: "u2", FacilityID: "f1", CourtID: "c2", Date: "2025-06-03", Price: 300, Status: models.BookingPending},
	} {
		require.NoError(t, bookings.Create(ctx, b))
	}
	return &DefaultStatsService{
		Users:      users,
		Facilities: facs,
		Courts:     courts,
		Bookings:   bookings,
		Now:        func() time.Time { return time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC) },
	}
}

func TestUserStats(t *testing.T) {
	svc := seeded(t)
	st, err := svc.ForUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 3, st.TotalBookings)
	assert.EqualValues(t, 1, st.ByStatus[models.BookingCancelled])
	assert.Equal(t, 900.0, st.TotalSpent)
	assert.Equal(t, 72, st.ReliabilityScore)
	assert.Equal(t, 1, st.Cancellations)

	_, err = svc.ForUser(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestOwnerStats(t *testing.T) {
	svc := seeded(t)
	st, err := svc.ForOwner(context.Background(), "o1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, st.Facilities)
	assert.EqualValues(t, 2, st.Courts)
	assert.EqualValues(t, 4, st.TotalBookings)
	assert.Equal(t, 900.0, st.Revenue)
	require.Len(t, st.DailyRevenue, 2)
	assert.Equal(t, "2025-06-01", st.DailyRevenue[0].Date)
	assert.Equal(t, 500.0, st.DailyRevenue[1].Amount)

	empty, err := svc.ForOwner(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Zero(t, empty.TotalBookings)
	assert.NotNil(t, empty.DailyRevenue)
}

func TestAdminStats(t *testing.T) {
	svc := seeded(t)
	st, err := svc.ForAdmin(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, st.Users)
	assert.EqualValues(t, 1, st.Owners)
	assert.EqualValues(t, 1, st.BannedUsers)
	assert.EqualValues(t, 1, st.Facilities[models.FacilityPending])
	assert.EqualValues(t, 4, st.TotalBookings)
	assert.Equal(t, 900.0, st.ConfirmedRevenue)
	assert.EqualValues(t, 2, st.BookingsBySport["badminton"])
	assert.EqualValues(t, 2, st.BookingsBySport["tennis"])
}
