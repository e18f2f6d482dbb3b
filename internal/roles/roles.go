package roles

// User roles.
const (
	SuperAdmin = "super_admin"
	Admin      = "admin"
	Barber     = "barber"
	Client     = "client"

	// Front-of-house alias: login forms send "barbershop" for what is
	// stored as "admin". Kept on purpose, not a bug.
	BarbershopAlias = "barbershop"
)

// Permission strings checked by the router and handlers.
const (
	PermViewAllUsers       = "view_all_users"
	PermViewAllBarbershops = "view_all_barbershops"
	PermManageAppointments = "manage_appointments"
	PermBookAppointments   = "book_appointments"
	PermManageClients      = "manage_clients"
	PermManageBarbers      = "manage_barbers"
	PermManageServices     = "manage_services"
	PermViewDashboard      = "view_dashboard"
	PermManageBilling      = "manage_billing"
)

// Template is the per-role session blueprint: the permission set and
// the dashboard sections the UI unlocks for that role.
type Template struct {
	Permissions       []string
	DashboardSections []string
}

var templates = map[string]Template{
	SuperAdmin: {
		Permissions: []string{
			PermViewAllUsers,
			PermViewAllBarbershops,
			PermManageAppointments,
			PermManageClients,
			PermManageBarbers,
			PermManageServices,
			PermViewDashboard,
			PermManageBilling,
		},
		DashboardSections: []string{"overview", "barbershops", "users", "reports", "settings"},
	},
	Admin: {
		Permissions: []string{
			PermViewAllUsers,
			PermManageAppointments,
			PermManageClients,
			PermManageBarbers,
			PermManageServices,
			PermViewDashboard,
			PermManageBilling,
		},
		DashboardSections: []string{"overview", "appointments", "clients", "barbers", "services", "settings"},
	},
	Barber: {
		Permissions: []string{
			PermManageAppointments,
			PermViewDashboard,
		},
		DashboardSections: []string{"overview", "appointments", "clients"},
	},
	Client: {
		Permissions: []string{
			PermBookAppointments,
			PermViewDashboard,
		},
		DashboardSections: []string{"overview", "appointments"},
	},
}

// TemplateFor returns the session template for a stored role.
func TemplateFor(role string) (Template, bool) {
	t, ok := templates[role]
	return t, ok
}

// Matches reports whether a requested login role is compatible with
// the stored one, honoring the barbershop→admin alias. An empty
// request matches any stored role.
func Matches(requested, stored string) bool {
	if requested == "" || requested == stored {
		return true
	}
	return requested == BarbershopAlias && stored == Admin
}

// HasPermission checks a permission against a session's set.
// super_admin bypasses the check entirely.
func HasPermission(role string, permissions []string, perm string) bool {
	if role == SuperAdmin {
		return true
	}
	for _, p := range permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// Valid reports whether a role string is one of the known roles.
func Valid(role string) bool {
	_, ok := templates[role]
	return ok
}
