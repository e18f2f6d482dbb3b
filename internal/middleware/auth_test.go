package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barber-platform/internal/auth"
	"github.com/BruksfildServices01/barber-platform/internal/models"
	"github.com/BruksfildServices01/barber-platform/internal/roles"
	"github.com/BruksfildServices01/barber-platform/internal/session"
)

type stubUsers struct {
	user *models.User
}

func (s *stubUsers) FindByEmail(context.Context, string) (*models.User, error) {
	if s.user == nil {
		return nil, auth.ErrUserNotFound
	}
	return s.user, nil
}

func (s *stubUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, auth.ErrUserNotFound
	}
	return s.user, nil
}

func (s *stubUsers) UpdateLastLogin(context.Context, string, time.Time) error {
	return nil
}

func authTestRig(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	tenant := "shop-1"
	users := &stubUsers{user: &models.User{
		ID:           "user-1",
		TenantID:     &tenant,
		Email:        "ana@example.com",
		PasswordHash: string(hashed),
		Role:         roles.Admin,
		IsActive:     true,
	}}

	registry := session.NewMemoryRegistry(10)
	svc := auth.NewService(users, registry, time.Hour, zap.NewNop(), nil)

	result, err := svc.Login(context.Background(), "ana@example.com", "secret123", roles.Admin)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/whoami", AuthMiddleware(svc, registry), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": UserID(c),
			"role":    Role(c),
		})
	})
	return r, result.Token
}

func TestAuthMiddleware(t *testing.T) {
	r, token := authTestRig(t)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid bearer", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"unknown token", "Bearer deadbeef", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, w.Body.String(), "user-1")
				assert.Contains(t, w.Body.String(), roles.Admin)
			}
		})
	}
}
