package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barber-platform/internal/roles"
)

func permRouter(role string, permissions []string, perm string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/guarded",
		func(c *gin.Context) {
			c.Set(ContextUserRole, role)
			c.Set(ContextPermissions, permissions)
		},
		RequirePermission(perm),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		},
	)
	return r
}

func TestRequirePermission(t *testing.T) {
	tests := []struct {
		name        string
		role        string
		permissions []string
		wantStatus  int
	}{
		{
			name:        "granted",
			role:        roles.Admin,
			permissions: []string{roles.PermViewAllUsers},
			wantStatus:  http.StatusOK,
		},
		{
			name:        "denied",
			role:        roles.Barber,
			permissions: []string{roles.PermManageAppointments},
			wantStatus:  http.StatusForbidden,
		},
		{
			name:        "super admin bypasses",
			role:        roles.SuperAdmin,
			permissions: nil,
			wantStatus:  http.StatusOK,
		},
		{
			name:        "empty session denied",
			role:        "",
			permissions: nil,
			wantStatus:  http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := permRouter(tt.role, tt.permissions, roles.PermViewAllUsers)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusForbidden {
				assert.Contains(t, w.Body.String(), "access_denied")
			}
		})
	}
}
