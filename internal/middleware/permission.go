package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-platform/internal/httperr"
	"github.com/BruksfildServices01/barber-platform/internal/roles"
)

// RequirePermission gates a route on a session permission. Super
// admins pass every gate.
func RequirePermission(perm string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !roles.HasPermission(Role(c), Permissions(c), perm) {
			httperr.Forbidden(c, httperr.CodeAccessDenied, "access denied")
			c.Abort()
			return
		}
		c.Next()
	}
}
