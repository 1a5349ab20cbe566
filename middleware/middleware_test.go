package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quickcourt/models"
	"quickcourt/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUsers map[string]*models.User

func (f fakeUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, utils.NotFound("user not found")
}

func token(t *testing.T, id string, role models.Role) string {
	t.Helper()
	tok, err := utils.GenerateToken(id, id+"@qc.test", string(role), time.Hour)
	require.NoError(t, err)
	return tok
}

func decode(t *testing.T, w *httptest.ResponseRecorder) utils.ErrorResponse {
	t.Helper()
	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": UserID(c), "role": Role(c)})
	})
	r.GET("/x", handlers...)
	return r
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	users := fakeUsers{
		"u1": {ID: "u1", Role: models.RoleUser},
		"b1": {ID: "b1", Role: models.RoleUser, Banned: true},
	}
	r := newRouter(Authenticate(users))

	w := serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unauthorized", decode(t, w).Error)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "ghost", models.RoleUser))
	assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "b1", models.RoleUser))
	w = serve(r, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "BANNED", decode(t, w).Code)

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "u1", models.RoleAdmin))
	w = serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	// the stored role wins over the claim
	assert.JSONEq(t, `{"userId":"u1","role":"user"}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/x?token="+token(t, "u1", models.RoleUser), nil)
	assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)
	assert.Equal(t, http.StatusOK, serve(newRouter(AuthenticateQuery(users)), req).Code)
}

func withRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if role != "" {
			c.Set(CtxRole, role)
		}
		c.Next()
	}
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name   string
		role   string
		guard  []models.Role
		status int
	}{
		{"no identity", "", []models.Role{models.RoleOwner}, http.StatusUnauthorized},
		{"facility_owner passes owner", "facility_owner", []models.Role{models.RoleOwner}, http.StatusOK},
		{"owner passes owner", "owner", []models.Role{models.RoleOwner}, http.StatusOK},
		{"user blocked from owner", "user", []models.Role{models.RoleOwner}, http.StatusForbidden},
		{"admin in list", "admin", []models.Role{models.RoleOwner, models.RoleAdmin}, http.StatusOK},
		{"unknown role", "superuser", []models.Role{models.RoleAdmin}, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRouter(withRole(tc.role), RequireRole(tc.guard...))
			w := serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))
			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusForbidden {
				assert.Equal(t, "forbidden", decode(t, w).Error)
			}
		})
	}
}

func TestRateLimitPerIP(t *testing.T) {
	r := newRouter(RateLimitMiddleware(2))
	hit := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
		return serve(r, req).Code
	}
	assert.Equal(t, http.StatusOK, hit("203.0.113.7"))
	assert.Equal(t, http.StatusOK, hit("203.0.113.7"))
	assert.Equal(t, http.StatusTooManyRequests, hit("203.0.113.7"))
	assert.Equal(t, http.StatusOK, hit("203.0.113.8"))
}

func TestLimiterStoreSweepsIdleVisitors(t *testing.T) {
	s := newRateLimiterStore(10)
	start := time.Now()
	s.getLimiter("a", start)
	s.getLimiter("b", start.Add(idleLimiterTTL+time.Minute))
	s.getLimiter("b", start.Add(2*idleLimiterTTL))
	assert.NotContains(t, s.visitors, "a")
	assert.Contains(t, s.visitors, "b")
}

func TestGetClientIP(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "192.0.2.1:4242"
	assert.Equal(t, "192.0.2.1", getClientIP(c))

	c.Request.Header.Set("X-Real-IP", "198.51.100.2")
	assert.Equal(t, "198.51.100.2", getClientIP(c))

	c.Request.Header.Set("X-Forwarded-For", "garbage, 198.51.100.3")
	assert.Equal(t, "198.51.100.2", getClientIP(c))
}

func TestOptionalAuthenticate(t *testing.T) {
	users := fakeUsers{"u1": {ID: "u1", Role: models.RoleOwner}}
	r := newRouter(OptionalAuthenticate(users))

	w := serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":"","role":""}`, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "u1", models.RoleOwner))
	w = serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":"u1","role":"owner"}`, w.Body.String())
}
