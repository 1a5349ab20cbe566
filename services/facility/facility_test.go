package facility

import (
	"context"
	"io"
	"strings"
	"testing"

	"quickcourt/database/repository/memrepo"
	"quickcourt/models"
	"quickcourt/services/notification"
	"quickcourt/services/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePhotos struct {
	uploaded []string
}

func (p *fakePhotos) Upload(_ context.Context, file io.Reader, filename, folder string) (*storage.UploadResult, error) {
	data, _ := io.ReadAll(file)
	p.uploaded = append(p.uploaded, folder+"/"+filename+":"+string(data))
	return &storage.UploadResult{URL: "https://img.test/" + filename, PublicID: folder + "/" + filename}, nil
}

func (p *fakePhotos) Delete(context.Context, string) error { return nil }

func newService() (*DefaultFacilityService, *memrepo.PriceEvents, *fakePhotos) {
	events := memrepo.NewPriceEvents()
	photos := &fakePhotos{}
	return &DefaultFacilityService{
		Facilities:  memrepo.NewFacilities(),
		Courts:      memrepo.NewCourts(),
		PriceEvents: events,
		Photos:      photos,
		Notifier:    notification.Nop{},
	}, events, photos
}

func price(v float64) *float64 { return &v }

func TestFacilityLifecycleAndVisibility(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	f, err := svc.Create(ctx, "owner1", models.FacilityInput{Name: " Smash Arena ", Address: "MG Road", City: "Pune", Sports: []string{"Badminton", "badminton", "Tennis"}})
	require.NoError(t, err)
	assert.Equal(t, models.FacilityPending, f.Status)
	assert.Equal(t, "Smash Arena", f.Name)
	assert.Equal(t, []string{"badminton", "tennis"}, f.Sports)

	page, err := svc.ListPublic(ctx, models.FacilityFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 0, page.Total)

	_, err = svc.Details(ctx, f.ID, "stranger", models.RoleUser)
	assert.ErrorIs(t, err, ErrFacilityNotFound)
	_, err = svc.Details(ctx, f.ID, "owner1", models.RoleOwner)
	assert.NoError(t, err)

	approved, err := svc.Approve(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FacilityApproved, approved.Status)

	page, err = svc.ListPublic(ctx, models.FacilityFilter{Sport: "TENNIS", City: "pune"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)

	rejected, err := svc.Reject(ctx, f.ID, "  duplicate listing ")
	require.NoError(t, err)
	assert.Equal(t, "duplicate listing", rejected.RejectionReason)

	_, err = svc.Update(ctx, "owner2", f.ID, models.FacilityInput{Name: "Hijack"})
	assert.ErrorIs(t, err, ErrNotOwner)

	pending, err := svc.ListByStatus(ctx, models.FacilityRejected, 1, 10)
	require.NoError(t, err)
	assert.Len(t, pending.Items, 1)
	_, err = svc.ListByStatus(ctx, "archived", 1, 10)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCourtPriceChangeIsRecorded(t *testing.T) {
	svc, events, _ := newService()
	ctx := context.Background()
	f, err := svc.Create(ctx, "owner1", models.FacilityInput{Name: "Arena", Address: "Street 1"})
	require.NoError(t, err)

	_, err = svc.CreateCourt(ctx, "owner1", models.CourtInput{FacilityID: f.ID, Name: "Court 1", Sport: "squash"})
	assert.Error(t, err)

	c, err := svc.CreateCourt(ctx, "owner1", models.CourtInput{FacilityID: f.ID, Name: "Court 1", Sport: "Squash", PricePerHour: price(400)})
	require.NoError(t, err)
	assert.Equal(t, "06:00", c.OpenTime)
	assert.Equal(t, "22:00", c.CloseTime)

	details, err := svc.Details(ctx, f.ID, "owner1", models.RoleOwner)
	require.NoError(t, err)
	assert.Contains(t, details.Sports, "squash")
	assert.Len(t, details.Courts, 1)

	updated, err := svc.UpdateCourt(ctx, "owner1", c.ID, models.CourtInput{PricePerHour: price(450), OpenTime: "07:00"})
	require.NoError(t, err)
	assert.Equal(t, 450.0, updated.PricePerHour)
	assert.Equal(t, "07:00", updated.OpenTime)

	history, err := svc.PriceHistory(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 400.0, history[0].OldPrice)
	assert.Equal(t, 450.0, history[0].NewPrice)
	assert.Equal(t, models.PriceSourceCourtUpdate, history[0].Source)

	_, err = events.ListByCourt(ctx, c.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateCourt(ctx, "owner1", c.ID))
	courts, err := svc.ListCourts(ctx, f.ID)
	require.NoError(t, err)
	assert.Empty(t, courts)

	assert.ErrorIs(t, svc.DeactivateCourt(ctx, "owner2", c.ID), ErrNotOwner)
}

func TestUploadPhoto(t *testing.T) {
	svc, _, photos := newService()
	ctx := context.Background()
	f, err := svc.Create(ctx, "owner1", models.FacilityInput{Name: "Arena", Address: "Street 1"})
	require.NoError(t, err)

	updated, err := svc.UploadPhoto(ctx, "owner1", f.ID, strings.NewReader("jpeg"), "front.jpg")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://img.test/front.jpg"}, updated.Photos)
	assert.Equal(t, []string{"quickcourt/facilities/" + f.ID + "/front.jpg:jpeg"}, photos.uploaded)

	svc.Photos = storage.Disabled{}
	_, err = svc.UploadPhoto(ctx, "owner1", f.ID, strings.NewReader("jpeg"), "side.jpg")
	assert.ErrorIs(t, err, storage.ErrStorageDisabled)
}

type gridRecorder struct{ courts []string }

func (g *gridRecorder) InvalidateCourt(_ context.Context, courtID string) {
	g.courts = append(g.courts, courtID)
}

func TestCourtWritesInvalidateSlotGrids(t *testing.T) {
	svc, _, _ := newService()
	grids := &gridRecorder{}
	svc.Grids = grids
	ctx := context.Background()

	f, err := svc.Create(ctx, "owner1", models.FacilityInput{Name: "Arena", Address: "Street 1"})
	require.NoError(t, err)
	c, err := svc.CreateCourt(ctx, "owner1", models.CourtInput{FacilityID: f.ID, Name: "Court 1", Sport: "tennis", PricePerHour: price(500)})
	require.NoError(t, err)
	assert.Empty(t, grids.courts)

	_, err = svc.UpdateCourt(ctx, "owner1", c.ID, models.CourtInput{PricePerHour: price(550)})
	require.NoError(t, err)
	_, err = svc.UpdateCourt(ctx, "owner1", c.ID, models.CourtInput{CloseTime: "20:00"})
	require.NoError(t, err)
	// no-op update
	_, err = svc.UpdateCourt(ctx, "owner1", c.ID, models.CourtInput{PricePerHour: price(550)})
	require.NoError(t, err)
	require.NoError(t, svc.DeactivateCourt(ctx, "owner1", c.ID))

	assert.Equal(t, []string{c.ID, c.ID, c.ID}, grids.courts)
}
