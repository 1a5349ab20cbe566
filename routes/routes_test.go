package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
	"time"

	"quickcourt/database"
	"quickcourt/database/repository/memrepo"
	"quickcourt/handlers"
	"quickcourt/models"
	"quickcourt/services/admin"
	"quickcourt/services/booking"
	"quickcourt/services/facility"
	"quickcourt/services/notification"
	"quickcourt/services/offer"
	"quickcourt/services/owner"
	"quickcourt/services/payment"
	"quickcourt/services/review"
	"quickcourt/services/slot"
	"quickcourt/services/stats"
	"quickcourt/services/storage"
	"quickcourt/services/user"
	"quickcourt/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type inbox struct {
	mu   sync.Mutex
	last map[string]string
}

func (m *inbox) Send(_ context.Context, to, _, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last[to] = body
	return nil
}

var otpPattern = regexp.MustCompile(`\b\d{6}\b`)

func (m *inbox) code(to string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return otpPattern.FindString(m.last[to])
}

type app struct {
	router *gin.Engine
	users  *memrepo.Users
	mail   *inbox
}

func newApp(t *testing.T) *app {
	t.Helper()
	users := memrepo.NewUsers()
	facilities := memrepo.NewFacilities()
	courts := memrepo.NewCourts()
	bookings := memrepo.NewBookings()
	bookings.Courts = courts
	slots := memrepo.NewTimeSlots()
	priceEvents := memrepo.NewPriceEvents()
	mail := &inbox{last: map[string]string{}}

	userSvc := &user.DefaultUserService{Repo: users, Mailer: mail, TokenTTL: time.Hour}
	slotSvc := &slot.DefaultSlotService{Slots: slots, Bookings: bookings, Courts: courts, Facilities: facilities}
	facilitySvc := &facility.DefaultFacilityService{
		Facilities:  facilities,
		Courts:      courts,
		PriceEvents: priceEvents,
		Photos:      storage.Disabled{},
		Notifier:    notification.Nop{},
		Grids:       slotSvc,
	}
	bookingSvc := &booking.DefaultBookingService{
		Bookings:    bookings,
		Courts:      courts,
		Facilities:  facilities,
		Coupons:     memrepo.NewCoupons(),
		Slots:       slotSvc,
		Payments:    payment.NewMockGateway(),
		Tx:          database.DirectRunner{},
		Reliability: userSvc,
		Notifier:    notification.Nop{},
		Currency:    "inr",
	}

	hb := &handlers.HandlerBundle{
		Users:    userSvc,
		Auth:     handlers.NewAuthHandler(userSvc),
		Facility: handlers.NewFacilityHandler(facilitySvc, &review.DefaultReviewService{Reviews: memrepo.NewReviews(), Bookings: bookings, Facilities: facilities}),
		Slot:     handlers.NewSlotHandler(slotSvc),
		Booking:  handlers.NewBookingHandler(bookingSvc),
		Offer: handlers.NewOfferHandler(&offer.DefaultOfferService{
			Offers: memrepo.NewOffers(), Facilities: facilities, Courts: courts, Bookings: bookings,
			PriceEvents: priceEvents, Notifier: notification.Nop{},
		}),
		Owner: handlers.NewOwnerHandler(&owner.DefaultOwnerService{Profiles: memrepo.NewOwnerProfiles(), Coupons: memrepo.NewCoupons(), Facilities: facilities}),
		Admin: handlers.NewAdminHandler(&admin.DefaultAdminService{Facilities: facilitySvc, Users: userSvc, Bookings: bookings}),
		Stats: handlers.NewStatsHandler(&stats.DefaultStatsService{Users: users, Facilities: facilities, Courts: courts, Bookings: bookings}),

		Integrations:      handlers.NewIntegrationsHandler(),
		MaxRequestsPerMin: 1000,
		CORSOrigins:       []string{"http://localhost:5173"},
	}
	r := gin.New()
	r.Use(utils.ErrorHandler())
	RegisterRoutes(r, hb)
	return &app{router: r, users: users, mail: mail}
}

func (a *app) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// register signs up and verifies an account, returning its token and id.
func (a *app) register(t *testing.T, name, email, role string) (string, string) {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/auth/signup", "", gin.H{"name": name, "email": email, "password": "secret1", "role": role})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": "secret1"})
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "OTP_REQUIRED", decode[utils.ErrorResponse](t, w).Code)

	w = a.do(t, http.MethodPost, "/api/auth/verify-otp", "", gin.H{"email": email, "otp": a.mail.code(email)})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	auth := decode[models.AuthResponse](t, w)
	return auth.Token, auth.User.ID
}

func (a *app) adminToken(t *testing.T) (string, string) {
	t.Helper()
	require.NoError(t, a.users.Create(context.Background(), &models.User{ID: "root", Email: "root@qc.test", Role: models.RoleAdmin, IsVerified: true}))
	tok, err := utils.GenerateToken("root", "root@qc.test", string(models.RoleAdmin), time.Hour)
	require.NoError(t, err)
	return tok, "root"
}

func TestBookingJourney(t *testing.T) {
	a := newApp(t)
	ownerTok, ownerID := a.register(t, "Olu", "owner@qc.test", "facility_owner")
	userTok, _ := a.register(t, "Asha", "asha@qc.test", "user")
	adminTok, _ := a.adminToken(t)

	w := a.do(t, http.MethodPost, "/api/facilities", userTok, gin.H{"name": "Nope", "address": "x"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(t, http.MethodPost, "/api/facilities", ownerTok, gin.H{"name": "Smash Arena", "address": "MG Road", "city": "Pune", "sports": []string{"badminton"}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	fac := decode[models.Facility](t, w)
	assert.Equal(t, models.FacilityPending, fac.Status)

	w = a.do(t, http.MethodGet, "/api/facilities/"+fac.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = a.do(t, http.MethodGet, "/api/facilities/"+fac.ID, ownerTok, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.do(t, http.MethodPost, "/api/courts", ownerTok, gin.H{"facilityId": fac.ID, "name": "Court 1", "sport": "badminton", "pricePerHour": 400})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	court := decode[models.Court](t, w)

	req := gin.H{"courtId": court.ID, "date": "2025-06-01", "startTime": "10:00", "duration": 1}
	w = a.do(t, http.MethodPost, "/api/bookings/create-pending", userTok, req)
	assert.Equal(t, http.StatusBadRequest, w.Code, "unapproved facility is not bookable")

	w = a.do(t, http.MethodPut, "/api/admin/facilities/"+fac.ID+"/approve", ownerTok, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = a.do(t, http.MethodPut, "/api/admin/facilities/"+fac.ID+"/approve", adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(t, http.MethodPost, "/api/bookings/create-pending", userTok, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	pending := decode[models.PendingBookingResponse](t, w)
	assert.Equal(t, models.BookingPending, pending.Booking.Status)
	assert.NotEmpty(t, pending.ClientSecret)

	w = a.do(t, http.MethodPost, "/api/bookings/verify-payment", userTok, gin.H{"bookingId": pending.Booking.ID, "paymentIntentId": pending.PaymentIntentID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.BookingConfirmed, decode[models.Booking](t, w).Status)

	w = a.do(t, http.MethodGet, "/api/slots/"+court.ID+"?date=2025-06-01", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var booked bool
	for _, s := range decode[[]models.TimeSlot](t, w) {
		if s.Start == "10:00" {
			booked = s.IsBooked
		}
	}
	assert.True(t, booked)

	w = a.do(t, http.MethodPost, "/api/bookings", userTok, req)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = a.do(t, http.MethodGet, "/api/bookings/owner", ownerTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Booking](t, w), 1)
	w = a.do(t, http.MethodGet, "/api/bookings/owner/"+ownerID, adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = a.do(t, http.MethodGet, "/api/bookings/owner/someone-else", ownerTok, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(t, http.MethodPut, "/api/bookings/"+pending.Booking.ID+"/cancel", userTok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.BookingCancelled, decode[models.Booking](t, w).Status)
	w = a.do(t, http.MethodPut, "/api/bookings/"+pending.Booking.ID+"/cancel", userTok, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(t, http.MethodGet, "/api/stats/user", userTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	us := decode[models.UserStats](t, w)
	assert.Equal(t, 70, us.ReliabilityScore)
	assert.Equal(t, 1, us.Cancellations)

	w = a.do(t, http.MethodGet, "/api/stats/facility-owner/"+ownerID, userTok, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = a.do(t, http.MethodGet, "/api/stats/facility-owner/"+ownerID, ownerTok, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminBanning(t *testing.T) {
	a := newApp(t)
	userTok, userID := a.register(t, "Asha", "asha@qc.test", "user")
	adminTok, adminID := a.adminToken(t)

	w := a.do(t, http.MethodPut, "/api/admin/users/"+adminID+"/ban", adminTok, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden", decode[utils.ErrorResponse](t, w).Error)

	w = a.do(t, http.MethodPut, "/api/admin/users/"+userID+"/ban", adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(t, http.MethodGet, "/api/auth/me", userTok, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "BANNED", decode[utils.ErrorResponse](t, w).Code)

	w = a.do(t, http.MethodGet, "/api/admin/users?role=user&banned=true", adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode[models.Page[models.User]](t, w).Total)

	w = a.do(t, http.MethodPut, "/api/admin/users/"+userID+"/unban", adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = a.do(t, http.MethodGet, "/api/auth/me", userTok, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIntegrationRoutes(t *testing.T) {
	a := newApp(t)

	w := a.do(t, http.MethodGet, "/api/integrations/maps/link?lat=18.52&lng=73.85", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "18.52%2C73.85")

	w = a.do(t, http.MethodGet, "/api/integrations/maps/link?lat=200&lng=1", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(t, http.MethodGet, "/api/integrations/weather?city=Pune&date=2025-06-01", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"city":"Pune"`)

	w = a.do(t, http.MethodGet, "/api/integrations/ics/Court%201?start=2025-06-01T10:00:00Z&end=2025-06-01T11:00:00Z", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/calendar; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "court-1.ics")
	assert.Contains(t, w.Body.String(), "DTSTART:20250601T100000Z")

	w = a.do(t, http.MethodGet, "/api/integrations/ics/x", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCORSConfig(t *testing.T) {
	open := corsConfig([]string{"*"})
	assert.True(t, open.AllowAllOrigins)
	assert.False(t, open.AllowCredentials)
	assert.NoError(t, open.Validate())

	strict := corsConfig([]string{"http://localhost:5173"})
	assert.False(t, strict.AllowAllOrigins)
	assert.True(t, strict.AllowCredentials)
	assert.NoError(t, strict.Validate())
}

func TestOversizedDurationIsBadRequest(t *testing.T) {
	a := newApp(t)
	ownerTok, _ := a.register(t, "Olu", "owner@qc.test", "owner")
	userTok, _ := a.register(t, "Asha", "asha@qc.test", "user")
	adminTok, _ := a.adminToken(t)

	w := a.do(t, http.MethodPost, "/api/facilities", ownerTok, gin.H{"name": "Smash Arena", "address": "MG Road"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	fac := decode[models.Facility](t, w)
	w = a.do(t, http.MethodPut, "/api/admin/facilities/"+fac.ID+"/approve", adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = a.do(t, http.MethodPost, "/api/courts", ownerTok, gin.H{"facilityId": fac.ID, "name": "Court 1", "sport": "badminton", "pricePerHour": 400})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	court := decode[models.Court](t, w)

	for _, path := range []string{"/api/bookings", "/api/bookings/create-pending"} {
		w = a.do(t, http.MethodPost, path, userTok, gin.H{"courtId": court.ID, "date": "2025-06-01", "startTime": "10:00", "duration": int64(1<<62 - 1)})
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}
