package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/BruksfildServices01/barber-platform/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-platform/internal/models"
	"github.com/BruksfildServices01/barber-platform/internal/roles"
)

var modelAppointment = models.Appointment{
	ID:       "ap-1",
	TenantID: "shop-1",
	BarberID: "b1",
	ClientID: "c1",
}

func TestApplyRoleScope(t *testing.T) {
	tests := []struct {
		name string
		role string
		in   domain.Filters
		want domain.Filters
	}{
		{
			name: "super admin untouched",
			role: roles.SuperAdmin,
			in:   domain.Filters{TenantID: "any-shop", BarberID: "any-barber"},
			want: domain.Filters{TenantID: "any-shop", BarberID: "any-barber"},
		},
		{
			name: "admin pinned to own tenant",
			role: roles.Admin,
			in:   domain.Filters{TenantID: "other-shop"},
			want: domain.Filters{TenantID: "my-shop"},
		},
		{
			name: "barber filter overridden, not merged",
			role: roles.Barber,
			in:   domain.Filters{TenantID: "other-shop", BarberID: "someone-else"},
			want: domain.Filters{TenantID: "my-shop", BarberID: "my-barber"},
		},
		{
			name: "client pinned to own record",
			role: roles.Client,
			in:   domain.Filters{ClientID: "someone-else"},
			want: domain.Filters{TenantID: "my-shop", ClientID: "my-client"},
		},
		{
			name: "other filters survive injection",
			role: roles.Admin,
			in:   domain.Filters{Status: "scheduled", Date: "2026-09-01"},
			want: domain.Filters{TenantID: "my-shop", Status: "scheduled", Date: "2026-09-01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.in
			applyRoleScope(&f, tt.role, "my-shop", "my-barber", "my-client")
			assert.Equal(t, tt.want, f)
		})
	}
}

func TestWithinScope(t *testing.T) {
	ap := &modelAppointment

	assert.True(t, withinScope(ap, domain.Filters{}))
	assert.True(t, withinScope(ap, domain.Filters{TenantID: "shop-1"}))
	assert.False(t, withinScope(ap, domain.Filters{TenantID: "shop-2"}))
	assert.True(t, withinScope(ap, domain.Filters{TenantID: "shop-1", BarberID: "b1"}))
	assert.False(t, withinScope(ap, domain.Filters{BarberID: "b2"}))
	assert.False(t, withinScope(ap, domain.Filters{ClientID: "c2"}))
}
