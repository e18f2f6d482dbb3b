package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-platform/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-platform/internal/middleware"
	"github.com/BruksfildServices01/barber-platform/internal/roles"
)

// applyRoleScope narrows appointment filters to what the caller may
// see. Injected values OVERRIDE anything the caller passed: an admin
// cannot read another shop's book by supplying a tenant filter, nor a
// barber another barber's by supplying barber_id. Super admins are
// left untouched.
func applyRoleScope(f *domain.Filters, role, tenantID, barberID, clientID string) {
	if role == roles.SuperAdmin {
		return
	}

	f.TenantID = tenantID

	switch role {
	case roles.Barber:
		f.BarberID = barberID
	case roles.Client:
		f.ClientID = clientID
	}
}

// requestTenant resolves the tenant a request operates on. Super
// admins may pick one via the tenant_id query (empty means all);
// everyone else is pinned to their session tenant.
func requestTenant(c *gin.Context) (string, bool) {
	if middleware.Role(c) == roles.SuperAdmin {
		return c.Query("tenant_id"), true
	}
	return middleware.TenantID(c)
}
