package admin

import (
	"context"
	"testing"

	"quickcourt/database/repository/memrepo"
	"quickcourt/models"
	"quickcourt/services/facility"
	"quickcourt/services/notification"
	"quickcourt/services/storage"
	"quickcourt/services/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc      *DefaultAdminService
	users    *memrepo.Users
	bookings *memrepo.Bookings
	facs     *memrepo.Facilities
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	users := memrepo.NewUsers()
	facs := memrepo.NewFacilities()
	bookings := memrepo.NewBookings()
	ctx := context.Background()
	for _, u := range []*models.User{
		{ID: "admin1", Name: "Root", Email: "root@qc.test", Role: models.RoleAdmin, IsVerified: true},
		{ID: "admin2", Name: "Ops", Email: "ops@qc.test", Role: models.RoleAdmin, IsVerified: true},
		{ID: "u1", Name: "Asha", Email: "asha@qc.test", Role: models.RoleUser, IsVerified: true},
	} {
		require.NoError(t, users.Create(ctx, u))
	}
	return fixture{
		svc: &DefaultAdminService{
			Facilities: &facility.DefaultFacilityService{
				Facilities:  facs,
				Courts:      memrepo.NewCourts(),
				PriceEvents: memrepo.NewPriceEvents(),
				Photos:      storage.Disabled{},
				Notifier:    notification.Nop{},
			},
			Users:    &user.DefaultUserService{Repo: users},
			Bookings: bookings,
		},
		users:    users,
		bookings: bookings,
		facs:     facs,
	}
}

func TestBanRules(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.svc.SetBanned(ctx, "admin1", "admin2", true)
	assert.ErrorIs(t, err, user.ErrCannotBanAdmin)
	other, _ := fx.users.GetByID(ctx, "admin2")
	assert.False(t, other.Banned)

	_, err = fx.svc.SetBanned(ctx, "admin1", "admin1", true)
	assert.Error(t, err)

	u, err := fx.svc.SetBanned(ctx, "admin1", "u1", true)
	require.NoError(t, err)
	assert.True(t, u.Banned)

	u, err = fx.svc.SetBanned(ctx, "admin1", "u1", false)
	require.NoError(t, err)
	assert.False(t, u.Banned)

	_, err = fx.svc.SetBanned(ctx, "admin1", "ghost", true)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestModerationQueue(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	require.NoError(t, fx.facs.Create(ctx, &models.Facility{ID: "f1", OwnerID: "o1", Name: "Smash", Address: "MG Road", Status: models.FacilityPending}))
	require.NoError(t, fx.facs.Create(ctx, &models.Facility{ID: "f2", OwnerID: "o1", Name: "Ace", Address: "FC Road", Status: models.FacilityPending}))

	page, err := fx.svc.ListFacilities(ctx, "", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)

	approved, err := fx.svc.ApproveFacility(ctx, "admin1", "f1")
	require.NoError(t, err)
	assert.Equal(t, models.FacilityApproved, approved.Status)

	rejected, err := fx.svc.RejectFacility(ctx, "admin1", "f2", "blurry photos")
	require.NoError(t, err)
	assert.Equal(t, models.FacilityRejected, rejected.Status)
	assert.Equal(t, "blurry photos", rejected.RejectionReason)

	page, err = fx.svc.ListFacilities(ctx, models.FacilityPending, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 0, page.Total)
}

func TestUserBookings(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	list, err := fx.svc.UserBookings(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, fx.bookings.Create(ctx, &models.Booking{ID: "b1", UserID: "u1", CourtID: "c1", Date: "2025-06-01", StartTime: "10:00", EndTime: "11:00", Status: models.BookingConfirmed}))
	require.NoError(t, fx.bookings.Create(ctx, &models.Booking{ID: "b2", UserID: "u2", CourtID: "c1", Date: "2025-06-01", StartTime: "11:00", EndTime: "12:00", Status: models.BookingConfirmed}))

	list, err = fx.svc.UserBookings(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b1", list[0].ID)

	_, err = fx.svc.UserBookings(ctx, "ghost")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
