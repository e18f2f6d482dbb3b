package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name      string
		requested string
		stored    string
		want      bool
	}{
		{"exact match", Admin, Admin, true},
		{"empty request matches anything", "", Barber, true},
		{"barbershop alias maps to admin", BarbershopAlias, Admin, true},
		{"barbershop alias does not map to barber", BarbershopAlias, Barber, false},
		{"mismatch", Client, Barber, false},
		{"stored admin requested client", Client, Admin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.requested, tt.stored))
		})
	}
}

func TestTemplateFor(t *testing.T) {
	for _, role := range []string{SuperAdmin, Admin, Barber, Client} {
		tpl, ok := TemplateFor(role)
		require.True(t, ok, role)
		assert.NotEmpty(t, tpl.Permissions, role)
		assert.NotEmpty(t, tpl.DashboardSections, role)
	}

	_, ok := TemplateFor("owner")
	assert.False(t, ok)

	// The alias is a login-form concept, never a stored role.
	_, ok = TemplateFor(BarbershopAlias)
	assert.False(t, ok)
}

func TestHasPermission(t *testing.T) {
	perms := []string{PermManageAppointments, PermViewDashboard}

	assert.True(t, HasPermission(Barber, perms, PermManageAppointments))
	assert.False(t, HasPermission(Barber, perms, PermViewAllUsers))

	// super_admin bypasses regardless of the session's set
	assert.True(t, HasPermission(SuperAdmin, nil, PermViewAllBarbershops))
}

func TestAdminTemplateScopesUsers(t *testing.T) {
	tpl, ok := TemplateFor(Admin)
	require.True(t, ok)

	assert.Contains(t, tpl.Permissions, PermViewAllUsers)
	assert.NotContains(t, tpl.Permissions, PermViewAllBarbershops)
}
