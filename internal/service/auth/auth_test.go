package auth

import (
	"context"
	"testing"
	"time"

	"aquadesk-service/internal/domain/auth"
	xerrors "aquadesk-service/internal/pkg/errors"
	"aquadesk-service/internal/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeUsers struct {
	users  map[string]*auth.User
	nextID int64
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[string]*auth.User{}}
}

func (f *fakeUsers) Create(_ context.Context, u *auth.User) error {
	if _, ok := f.users[u.Email]; ok {
		return xerrors.Conflictf("a user with email %s already exists", u.Email)
	}
	f.nextID++
	u.ID = f.nextID
	f.users[u.Email] = u
	return nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) FindByID(_ context.Context, id int64) (*auth.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := f.users[email]
	return ok, nil
}

type fakeLimiter struct {
	attempts map[string]int64
	max      int64
	resets   int
}

func newFakeLimiter(max int64) *fakeLimiter {
	return &fakeLimiter{attempts: map[string]int64{}, max: max}
}

func (f *fakeLimiter) CheckLoginAttempt(_ context.Context, ip, email string) (bool, int64, error) {
	key := ip + ":" + email
	f.attempts[key]++
	remaining := f.max - f.attempts[key]
	if remaining < 0 {
		remaining = 0
	}
	return f.attempts[key] <= f.max, remaining, nil
}

func (f *fakeLimiter) ResetLoginAttempts(_ context.Context, ip, email string) error {
	f.resets++
	delete(f.attempts, ip+":"+email)
	return nil
}

func newTestService(t *testing.T, limiter LoginLimiter) (*AuthService, *fakeUsers) {
	t.Helper()
	tokens, err := jwt.NewManager("test-secret", "aquadesk", time.Hour)
	require.NoError(t, err)
	users := newFakeUsers()
	return NewAuthService(users, tokens, limiter, zap.NewNop()), users
}

func seedUser(t *testing.T, users *fakeUsers, email, password, role string, active bool) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), &auth.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "Test User",
		Role:         role,
		IsActive:     active,
	}))
}

func TestLogin_Success(t *testing.T) {
	limiter := newFakeLimiter(5)
	svc, users := newTestService(t, limiter)
	seedUser(t, users, "admin@aquadesk.pk", "secret-pass", "admin", true)

	resp, err := svc.Login(context.Background(), &auth.LoginRequest{
		Email: "admin@aquadesk.pk", Password: "secret-pass",
	}, "127.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin", resp.User.Role)
	assert.Equal(t, 1, limiter.resets)

	claims, err := svc.ValidateToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.True(t, claims.IsAdmin())
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, users := newTestService(t, newFakeLimiter(5))
	seedUser(t, users, "staff@aquadesk.pk", "correct", "staff", true)

	_, err := svc.Login(context.Background(), &auth.LoginRequest{
		Email: "staff@aquadesk.pk", Password: "wrong",
	}, "127.0.0.1")
	assert.ErrorIs(t, err, xerrors.ErrUnauthorized)
}

func TestLogin_UnknownEmailLooksLikeBadPassword(t *testing.T) {
	svc, _ := newTestService(t, newFakeLimiter(5))

	_, err := svc.Login(context.Background(), &auth.LoginRequest{
		Email: "nobody@aquadesk.pk", Password: "whatever",
	}, "127.0.0.1")
	assert.ErrorIs(t, err, xerrors.ErrUnauthorized)
}

func TestLogin_InactiveUser(t *testing.T) {
	svc, users := newTestService(t, newFakeLimiter(5))
	seedUser(t, users, "former@aquadesk.pk", "secret-pass", "staff", false)

	_, err := svc.Login(context.Background(), &auth.LoginRequest{
		Email: "former@aquadesk.pk", Password: "secret-pass",
	}, "127.0.0.1")
	assert.ErrorIs(t, err, xerrors.ErrUnauthorized)
}

func TestLogin_RateLimited(t *testing.T) {
	svc, users := newTestService(t, newFakeLimiter(2))
	seedUser(t, users, "staff@aquadesk.pk", "correct", "staff", true)

	for i := 0; i < 2; i++ {
		_, err := svc.Login(context.Background(), &auth.LoginRequest{
			Email: "staff@aquadesk.pk", Password: "wrong",
		}, "10.0.0.1")
		assert.ErrorIs(t, err, xerrors.ErrUnauthorized)
	}

	// third attempt blocked even with the right password
	_, err := svc.Login(context.Background(), &auth.LoginRequest{
		Email: "staff@aquadesk.pk", Password: "correct",
	}, "10.0.0.1")
	assert.ErrorIs(t, err, xerrors.ErrRateLimited)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t, newFakeLimiter(5))

	_, err := svc.Register(context.Background(), &auth.RegisterRequest{
		Email: "staff@aquadesk.pk", Password: "long-enough", FullName: "One", Role: "staff",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &auth.RegisterRequest{
		Email: "staff@aquadesk.pk", Password: "long-enough", FullName: "Two", Role: "staff",
	})
	assert.ErrorIs(t, err, xerrors.ErrConflict)
}

func TestRegister_ShortPassword(t *testing.T) {
	svc, _ := newTestService(t, newFakeLimiter(5))

	_, err := svc.Register(context.Background(), &auth.RegisterRequest{
		Email: "staff@aquadesk.pk", Password: "short", FullName: "One", Role: "staff",
	})
	assert.ErrorIs(t, err, xerrors.ErrValidation)
}

func TestEnsureAdminExists(t *testing.T) {
	svc, users := newTestService(t, newFakeLimiter(5))

	require.NoError(t, svc.EnsureAdminExists(context.Background(), "admin@aquadesk.pk", "bootstrap-pass"))
	u, err := users.FindByEmail(context.Background(), "admin@aquadesk.pk")
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Role)

	// second call is a no-op
	require.NoError(t, svc.EnsureAdminExists(context.Background(), "admin@aquadesk.pk", "bootstrap-pass"))
	assert.Len(t, users.users, 1)

	// unset config is a no-op
	require.NoError(t, svc.EnsureAdminExists(context.Background(), "", ""))
}

func TestValidateToken_Garbage(t *testing.T) {
	svc, _ := newTestService(t, newFakeLimiter(5))

	_, err := svc.ValidateToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, xerrors.ErrUnauthorized)
}
