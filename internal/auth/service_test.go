package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barber-platform/internal/httperr"
	"github.com/BruksfildServices01/barber-platform/internal/models"
	"github.com/BruksfildServices01/barber-platform/internal/roles"
	"github.com/BruksfildServices01/barber-platform/internal/session"
)

type fakeUserStore struct {
	users      map[string]*models.User // by lowercase email
	lastLogins map[string]time.Time
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{
		users:      map[string]*models.User{},
		lastLogins: map[string]time.Time{},
	}
	for _, u := range users {
		s.users[u.Email] = u
	}
	return s
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := s.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *fakeUserStore) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	s.lastLogins[id] = at
	return nil
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func newTestService(t *testing.T, store UserStore) (*Service, session.Registry) {
	t.Helper()
	registry := session.NewMemoryRegistry(100)
	svc := NewService(store, registry, time.Hour, zap.NewNop(), nil)
	return svc, registry
}

func adminUser(t *testing.T) *models.User {
	tenant := "shop-1"
	return &models.User{
		ID:           "user-1",
		TenantID:     &tenant,
		Name:         "Ana",
		Email:        "ana@example.com",
		PasswordHash: hash(t, "secret123"),
		Role:         roles.Admin,
		IsActive:     true,
	}
}

func TestLoginSuccess(t *testing.T) {
	user := adminUser(t)
	store := newFakeUserStore(user)
	svc, registry := newTestService(t, store)

	result, err := svc.Login(context.Background(), "ana@example.com", "secret123", roles.Admin)
	require.NoError(t, err)

	assert.NotEmpty(t, result.Token)
	assert.Equal(t, user.ID, result.User.ID)
	assert.Contains(t, result.Permissions, roles.PermViewAllUsers)

	sess, err := registry.Get(context.Background(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, sess.UserID)
	require.NotNil(t, sess.TenantID)
	assert.Equal(t, "shop-1", *sess.TenantID)

	_, stamped := store.lastLogins[user.ID]
	assert.True(t, stamped, "successful login stamps last_login")
}

func TestLoginNormalizesEmailCase(t *testing.T) {
	svc, _ := newTestService(t, newFakeUserStore(adminUser(t)))

	_, err := svc.Login(context.Background(), "  ANA@Example.COM ", "secret123", roles.Admin)
	assert.NoError(t, err)
}

func TestLoginBarbershopAlias(t *testing.T) {
	svc, _ := newTestService(t, newFakeUserStore(adminUser(t)))

	result, err := svc.Login(context.Background(), "ana@example.com", "secret123", roles.BarbershopAlias)
	require.NoError(t, err)
	assert.Equal(t, roles.Admin, result.User.Role)
}

func TestLoginFailureOrder(t *testing.T) {
	tenant := "shop-1"
	inactive := &models.User{
		ID:           "user-2",
		TenantID:     &tenant,
		Email:        "off@example.com",
		PasswordHash: hash(t, "secret123"),
		Role:         roles.Barber,
		IsActive:     false,
	}
	svc, _ := newTestService(t, newFakeUserStore(adminUser(t), inactive))

	tests := []struct {
		name     string
		email    string
		password string
		role     string
		code     string
	}{
		{"unknown user", "ghost@example.com", "whatever", roles.Admin, httperr.CodeInvalidCredentials},
		{"wrong password", "ana@example.com", "nope", roles.Admin, httperr.CodeInvalidCredentials},
		// Inactive outranks role mismatch: active check runs first.
		{"inactive user", "off@example.com", "secret123", roles.Admin, httperr.CodeUserInactive},
		{"role mismatch", "ana@example.com", "secret123", roles.Client, httperr.CodeTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.email, tt.password, tt.role)
			require.Error(t, err)
			assert.True(t, httperr.IsBusiness(err, tt.code), "want %s, got %v", tt.code, err)
		})
	}
}

func TestLoginUnknownRoleTemplate(t *testing.T) {
	tenant := "shop-1"
	odd := &models.User{
		ID:           "user-3",
		TenantID:     &tenant,
		Email:        "odd@example.com",
		PasswordHash: hash(t, "secret123"),
		Role:         "owner",
		IsActive:     true,
	}
	svc, _ := newTestService(t, newFakeUserStore(odd))

	_, err := svc.Login(context.Background(), "odd@example.com", "secret123", "")
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNoSessionTemplate))
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc, registry := newTestService(t, newFakeUserStore(adminUser(t)))

	result, err := svc.Login(context.Background(), "ana@example.com", "secret123", roles.Admin)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), result.Token))
	require.NoError(t, svc.Logout(context.Background(), result.Token))

	_, err = registry.Get(context.Background(), result.Token)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestValidateSession(t *testing.T) {
	user := adminUser(t)
	store := newFakeUserStore(user)
	svc, _ := newTestService(t, store)

	result, err := svc.Login(context.Background(), "ana@example.com", "secret123", roles.Admin)
	require.NoError(t, err)

	got, sess, err := svc.ValidateSession(context.Background(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, roles.Admin, sess.Role)
}

func TestValidateSessionRejectsUnknownToken(t *testing.T) {
	svc, _ := newTestService(t, newFakeUserStore(adminUser(t)))

	_, _, err := svc.ValidateSession(context.Background(), "bogus")
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidSession))
}

func TestValidateSessionEvictsDeactivatedUser(t *testing.T) {
	user := adminUser(t)
	store := newFakeUserStore(user)
	svc, registry := newTestService(t, store)

	result, err := svc.Login(context.Background(), "ana@example.com", "secret123", roles.Admin)
	require.NoError(t, err)

	// Concurrent deactivation after the session was issued.
	user.IsActive = false

	_, _, err = svc.ValidateSession(context.Background(), result.Token)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidSession))

	_, err = registry.Get(context.Background(), result.Token)
	assert.ErrorIs(t, err, session.ErrNotFound, "session of a deactivated user is evicted")
}
