package owner

import (
	"context"
	"testing"
	"time"

	"quickcourt/database/repository/memrepo"
	"quickcourt/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *DefaultOwnerService {
	t.Helper()
	facilities := memrepo.NewFacilities()
	require.NoError(t, facilities.Create(context.Background(), &models.Facility{ID: "f1", OwnerID: "owner1"}))
	return &DefaultOwnerService{
		Profiles:   memrepo.NewOwnerProfiles(),
		Coupons:    memrepo.NewCoupons(),
		Facilities: facilities,
	}
}

func TestProfileRoundTrip(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	empty, err := svc.GetProfile(ctx, "owner1")
	require.NoError(t, err)
	assert.Equal(t, "owner1", empty.UserID)
	assert.Empty(t, empty.BusinessName)

	_, err = svc.UpdateProfile(ctx, "owner1", models.OwnerProfileRequest{BusinessName: "Smash Sports LLP", GSTNumber: "27abcde1234f1z5", PayoutEmail: "Pay@Smash.in"})
	require.NoError(t, err)

	p, err := svc.GetProfile(ctx, "owner1")
	require.NoError(t, err)
	assert.Equal(t, "Smash Sports LLP", p.BusinessName)
	assert.Equal(t, "27ABCDE1234F1Z5", p.GSTNumber)
	assert.Equal(t, "pay@smash.in", p.PayoutEmail)
}

func TestCouponRules(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	c, err := svc.CreateCoupon(ctx, "owner1", models.CouponRequest{Code: "weekend20", FacilityID: "f1", PercentOff: 20})
	require.NoError(t, err)
	assert.Equal(t, "WEEKEND20", c.Code)
	assert.True(t, c.Active)

	_, err = svc.CreateCoupon(ctx, "owner1", models.CouponRequest{Code: "Weekend20", PercentOff: 10})
	assert.ErrorIs(t, err, ErrCouponExists)

	_, err = svc.CreateCoupon(ctx, "owner2", models.CouponRequest{Code: "STEAL", FacilityID: "f1", PercentOff: 50})
	assert.ErrorIs(t, err, ErrNotFacilityOwner)

	past := time.Now().Add(-time.Hour)
	_, err = svc.CreateCoupon(ctx, "owner1", models.CouponRequest{Code: "OLD", PercentOff: 5, ExpiresAt: &past})
	assert.ErrorIs(t, err, ErrCouponExpired)

	assert.ErrorIs(t, svc.DeactivateCoupon(ctx, "owner2", c.ID), ErrCouponNotFound)
	require.NoError(t, svc.DeactivateCoupon(ctx, "owner1", c.ID))

	list, err := svc.ListCoupons(ctx, "owner1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].Active)
}
