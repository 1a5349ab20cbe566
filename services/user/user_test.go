package user

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"quickcourt/database/repository/memrepo"
	"quickcourt/models"
	"quickcourt/utils"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureMailer struct {
	mu   sync.Mutex
	last string
}

func (m *captureMailer) Send(_ context.Context, _, _, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = body
	return nil
}

var codePattern = regexp.MustCompile(`\b\d{6}\b`)

func (m *captureMailer) code() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return codePattern.FindString(m.last)
}

func newService() (*DefaultUserService, *memrepo.Users, *captureMailer) {
	repo := memrepo.NewUsers()
	mailer := &captureMailer{}
	return &DefaultUserService{Repo: repo, Mailer: mailer, TokenTTL: time.Hour}, repo, mailer
}

func intPtr(v int) *int { return &v }

func TestAdjustReliability(t *testing.T) {
	cases := []struct {
		name    string
		current *int
		event   models.ReliabilityEvent
		want    int
	}{
		{"cancel from 80", intPtr(80), models.ReliabilityCancelled, 70},
		{"cancel clamps at 0", intPtr(0), models.ReliabilityCancelled, 0},
		{"cancel from 5", intPtr(5), models.ReliabilityCancelled, 0},
		{"complete clamps at 100", intPtr(100), models.ReliabilityCompleted, 100},
		{"complete from 80", intPtr(80), models.ReliabilityCompleted, 82},
		{"unset defaults to 80", nil, models.ReliabilityCompleted, 82},
		{"unknown event keeps score", intPtr(55), "no_show", 55},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AdjustReliability(tc.current, tc.event))
		})
	}
}

func TestSignupVerifyLoginFlow(t *testing.T) {
	svc, _, mailer := newService()
	ctx := context.Background()

	u, err := svc.Signup(ctx, models.SignupRequest{Name: "Asha", Email: "Asha@Example.com", Password: "secret1", Role: "facility_owner"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleOwner, u.Role)
	assert.Equal(t, "asha@example.com", u.Email)
	assert.Equal(t, 80, u.Score())

	_, err = svc.Login(ctx, models.LoginRequest{Email: "asha@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrOTPRequired)

	_, err = svc.VerifyOTP(ctx, models.VerifyOTPRequest{Email: "asha@example.com", OTP: "000000x"})
	assert.ErrorIs(t, err, ErrOTPInvalid)

	code := mailer.code()
	require.Len(t, code, 6)
	resp, err := svc.VerifyOTP(ctx, models.VerifyOTPRequest{Email: "asha@example.com", OTP: code})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.True(t, resp.User.IsVerified)

	claims, err := utils.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "owner", claims.Role)

	resp, err = svc.Login(ctx, models.LoginRequest{Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, resp.User.ID)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "asha@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignupRejectsDuplicateEmailAndAdminRole(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	_, err := svc.Signup(ctx, models.SignupRequest{Name: "A", Email: "a@x.io", Password: "secret1"})
	require.NoError(t, err)
	_, err = svc.Signup(ctx, models.SignupRequest{Name: "B", Email: "A@x.io", Password: "secret1"})
	assert.ErrorIs(t, err, ErrEmailInUse)
	assert.Equal(t, "EMAIL_IN_USE", ErrEmailInUse.Code)

	_, err = svc.Signup(ctx, models.SignupRequest{Name: "C", Email: "c@x.io", Password: "secret1", Role: "admin"})
	assert.ErrorIs(t, err, ErrAdminSignup)
}

func TestExpiredOTP(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()
	past := time.Now().Add(-time.Minute)
	hash, _ := utils.HashSecret("123456")
	require.NoError(t, repo.Create(ctx, &models.User{ID: "u1", Email: "u@x.io", OTPHash: hash, OTPExpiresAt: &past}))

	_, err := svc.VerifyOTP(ctx, models.VerifyOTPRequest{Email: "u@x.io", OTP: "123456"})
	assert.ErrorIs(t, err, ErrOTPExpired)
}

func TestBannedUserCannotLogin(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()
	hash, _ := utils.HashSecret("secret1")
	require.NoError(t, repo.Create(ctx, &models.User{ID: "u1", Email: "u@x.io", PasswordHash: hash, IsVerified: true, Banned: true}))

	_, err := svc.Login(ctx, models.LoginRequest{Email: "u@x.io", Password: "secret1"})
	assert.ErrorIs(t, err, ErrBanned)
}

func TestAdminCannotBeBanned(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &models.User{ID: "a1", Email: "admin@x.io", Role: models.RoleAdmin}))

	_, err := svc.SetBanned(ctx, "a1", true)
	assert.ErrorIs(t, err, ErrCannotBanAdmin)

	stored, err := repo.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.False(t, stored.Banned)
}

func TestBanEvictsCachedUser(t *testing.T) {
	svc, repo, _ := newService()
	db, mock := redismock.NewClientMock()
	svc.Cache = NewUserCache(db)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &models.User{ID: "u1", Email: "u@x.io", Role: models.RoleUser}))

	mock.ExpectDel(utils.UserCachePrefix + "u1").SetVal(1)
	u, err := svc.SetBanned(ctx, "u1", true)
	require.NoError(t, err)
	assert.True(t, u.Banned)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordOutcomeUpdatesScoreAndCancellations(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &models.User{ID: "u1", Email: "u@x.io", ReliabilityScore: intPtr(80)}))

	require.NoError(t, svc.RecordOutcome(ctx, "u1", models.ReliabilityCancelled))
	u, _ := repo.GetByID(ctx, "u1")
	assert.Equal(t, 70, u.Score())
	assert.Equal(t, 1, u.Cancellations)

	require.NoError(t, svc.RecordOutcome(ctx, "u1", models.ReliabilityCompleted))
	u, _ = repo.GetByID(ctx, "u1")
	assert.Equal(t, 72, u.Score())
	assert.Equal(t, 1, u.Cancellations)
}

func TestChangePasswordAndProfile(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()
	hash, _ := utils.HashSecret("old-pass")
	require.NoError(t, repo.Create(ctx, &models.User{ID: "u1", Email: "u@x.io", Name: "Old", PasswordHash: hash, IsVerified: true}))

	assert.ErrorIs(t, svc.ChangePassword(ctx, "u1", models.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "new-pass"}), ErrWrongPassword)
	require.NoError(t, svc.ChangePassword(ctx, "u1", models.ChangePasswordRequest{CurrentPassword: "old-pass", NewPassword: "new-pass"}))
	_, err := svc.Login(ctx, models.LoginRequest{Email: "u@x.io", Password: "new-pass"})
	assert.NoError(t, err)

	name := "  New Name "
	u, err := svc.UpdateProfile(ctx, "u1", models.ProfileUpdateRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "New Name", u.Name)
}
