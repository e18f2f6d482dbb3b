package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-platform/internal/auth"
	"github.com/BruksfildServices01/barber-platform/internal/httperr"
	"github.com/BruksfildServices01/barber-platform/internal/session"
)

const (
	ContextUserID      = "userID"
	ContextTenantID    = "tenantID"
	ContextUserRole    = "userRole"
	ContextPermissions = "permissions"
	ContextSession     = "session"
)

// AuthMiddleware resolves the bearer token against the session
// registry and stashes the caller's identity on the request context.
// Activity is stamped so the sweeper can evict idle sessions first.
func AuthMiddleware(svc *auth.Service, registry session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, httperr.CodeInvalidSession, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, httperr.CodeInvalidSession, "invalid authorization header")
			c.Abort()
			return
		}

		token := parts[1]

		user, sess, err := svc.ValidateSession(c.Request.Context(), token)
		if err != nil {
			httperr.FromError(c, err)
			c.Abort()
			return
		}

		_ = registry.Touch(c.Request.Context(), token)

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUserRole, sess.Role)
		c.Set(ContextPermissions, sess.Permissions)
		c.Set(ContextSession, sess)
		if sess.TenantID != nil {
			c.Set(ContextTenantID, *sess.TenantID)
		}

		c.Next()
	}
}

// TenantID returns the caller's barbershop scope; super admins have none.
func TenantID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextTenantID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

func Role(c *gin.Context) string {
	return c.GetString(ContextUserRole)
}

func Permissions(c *gin.Context) []string {
	v, ok := c.Get(ContextPermissions)
	if !ok {
		return nil
	}
	perms, _ := v.([]string)
	return perms
}
