package offer

import (
	"context"
	"sync"
	"testing"

	"quickcourt/database/repository/memrepo"
	"quickcourt/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type event struct {
	name  string
	rooms []string
}

type recorder struct {
	mu     sync.Mutex
	events []event
}

func (r *recorder) Publish(_ context.Context, name string, _ interface{}, rooms ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event{name: name, rooms: rooms})
	return nil
}

type fixture struct {
	svc         *DefaultOfferService
	bookings    *memrepo.Bookings
	priceEvents *memrepo.PriceEvents
	notifier    *recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	facilities := memrepo.NewFacilities()
	courts := memrepo.NewCourts()
	require.NoError(t, facilities.Create(ctx, &models.Facility{ID: "f1", OwnerID: "owner1", Status: models.FacilityApproved}))
	require.NoError(t, courts.Create(ctx, &models.Court{ID: "c1", FacilityID: "f1", PricePerHour: 500, IsActive: true}))
	require.NoError(t, courts.Create(ctx, &models.Court{ID: "c9", FacilityID: "f9", PricePerHour: 500, IsActive: true}))

	f := &fixture{
		bookings:    memrepo.NewBookings(),
		priceEvents: memrepo.NewPriceEvents(),
		notifier:    &recorder{},
	}
	f.svc = &DefaultOfferService{
		Offers:      memrepo.NewOffers(),
		Facilities:  facilities,
		Courts:      courts,
		Bookings:    f.bookings,
		PriceEvents: f.priceEvents,
		Notifier:    f.notifier,
	}
	return f
}

func request(bookingID string, price float64) models.OfferRequest {
	return models.OfferRequest{
		FacilityID: "f1", CourtID: "c1", BookingID: bookingID,
		Date: "2025-06-01", StartTime: "10:00", EndTime: "11:00",
		OfferedPrice: price,
	}
}

func TestAcceptRewritesBoundBookingPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.bookings.Create(ctx, &models.Booking{
		ID: "b1", UserID: "u1", FacilityID: "f1", CourtID: "c1",
		Date: "2025-06-01", StartTime: "10:00", EndTime: "11:00", Price: 500, Status: models.BookingConfirmed,
	}))

	o, err := f.svc.Create(ctx, "u1", request("b1", 450))
	require.NoError(t, err)
	assert.Equal(t, models.OfferPending, o.Status)
	assert.Equal(t, 500.0, o.OriginalPrice)
	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, models.EventOfferNew, f.notifier.events[0].name)
	assert.Equal(t, []string{"role:owner", "user:u1"}, f.notifier.events[0].rooms)

	accepted, err := f.svc.Act(ctx, "owner1", o.ID, models.OfferActionAccept, models.OfferActionRequest{})
	require.NoError(t, err)
	assert.Equal(t, models.OfferAccepted, accepted.Status)

	b, err := f.bookings.GetByID(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, 450.0, b.Price)

	history, err := f.priceEvents.ListByCourt(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 500.0, history[0].OldPrice)
	assert.Equal(t, 450.0, history[0].NewPrice)
	assert.Equal(t, models.PriceSourceOfferAccepted, history[0].Source)

	last := f.notifier.events[len(f.notifier.events)-1]
	assert.Equal(t, models.EventOfferUpdate, last.name)
	assert.Equal(t, []string{"user:u1", "user:owner1"}, last.rooms)

	_, err = f.svc.Act(ctx, "owner1", o.ID, models.OfferActionReject, models.OfferActionRequest{})
	assert.ErrorIs(t, err, ErrOfferClosed)
}

func TestCounterThenCreatorAccepts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o, err := f.svc.Create(ctx, "u1", request("", 300))
	require.NoError(t, err)
	assert.Equal(t, 500.0, o.OriginalPrice)

	_, err = f.svc.Act(ctx, "u1", o.ID, models.OfferActionAccept, models.OfferActionRequest{})
	assert.ErrorIs(t, err, ErrNotAllowed)

	_, err = f.svc.Act(ctx, "owner1", o.ID, models.OfferActionCounter, models.OfferActionRequest{})
	assert.ErrorIs(t, err, ErrInvalidCounter)

	countered, err := f.svc.Act(ctx, "owner1", o.ID, models.OfferActionCounter, models.OfferActionRequest{CounterPrice: 400})
	require.NoError(t, err)
	assert.Equal(t, models.OfferCountered, countered.Status)
	require.NotNil(t, countered.CounterPrice)
	assert.Equal(t, 400.0, *countered.CounterPrice)

	_, err = f.svc.Act(ctx, "owner1", o.ID, models.OfferActionAccept, models.OfferActionRequest{})
	assert.ErrorIs(t, err, ErrNotAllowed)
	_, err = f.svc.Act(ctx, "u1", o.ID, models.OfferActionCounter, models.OfferActionRequest{CounterPrice: 350})
	assert.ErrorIs(t, err, ErrOfferClosed)

	accepted, err := f.svc.Act(ctx, "u1", o.ID, models.OfferActionAccept, models.OfferActionRequest{})
	require.NoError(t, err)
	assert.Equal(t, models.OfferAccepted, accepted.Status)
	assert.Equal(t, 400.0, accepted.OfferedPrice)

	_, err = f.svc.Act(ctx, "u1", o.ID, models.OfferActionReject, models.OfferActionRequest{})
	assert.ErrorIs(t, err, ErrOfferClosed)
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, "u1", request("", 0))
	assert.ErrorIs(t, err, ErrInvalidPrice)

	req := request("", 400)
	req.CourtID = "c9"
	_, err = f.svc.Create(ctx, "u1", req)
	assert.ErrorIs(t, err, ErrCourtMismatch)

	req = request("", 400)
	req.FacilityID = "missing"
	_, err = f.svc.Create(ctx, "u1", req)
	assert.ErrorIs(t, err, ErrFacilityNotFound)

	require.NoError(t, f.bookings.Create(ctx, &models.Booking{ID: "b2", UserID: "u2", CourtID: "c1", Price: 500}))
	_, err = f.svc.Create(ctx, "u1", request("b2", 400))
	assert.ErrorIs(t, err, ErrBookingNotOwned)
}

func TestFacilityListingAndStatsAreOwnerOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o1, err := f.svc.Create(ctx, "u1", request("", 400))
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, "u2", request("", 450))
	require.NoError(t, err)
	_, err = f.svc.Act(ctx, "owner1", o1.ID, models.OfferActionReject, models.OfferActionRequest{})
	require.NoError(t, err)

	_, err = f.svc.ListForFacility(ctx, "intruder", "f1")
	assert.ErrorIs(t, err, ErrNotAllowed)

	list, err := f.svc.ListForFacility(ctx, "owner1", "f1")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	stats, err := f.svc.Stats(ctx, "owner1", "f1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.Total)
	assert.EqualValues(t, 1, stats.ByStatus[models.OfferRejected])
	assert.EqualValues(t, 1, stats.ByStatus[models.OfferPending])
	assert.InDelta(t, 75.0, stats.AverageDiscount, 0.001)

	mine, err := f.svc.ListForUser(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}
