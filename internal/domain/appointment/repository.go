package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-platform/internal/models"
)

// Filters narrows an appointment listing. Zero values are ignored.
type Filters struct {
	TenantID  string
	BarberID  string
	ClientID  string
	ServiceID string
	Status    string
	Date      string
	DateFrom  string
	DateTo    string
}

// Page carries pagination and ordering for listings.
type Page struct {
	Page   int
	Limit  int
	SortBy string
	Order  string
}

type Repository interface {
	// -------- Referenced entities --------
	GetClient(
		ctx context.Context,
		id string,
	) (*models.Client, error)

	GetBarber(
		ctx context.Context,
		id string,
	) (*models.Barber, error)

	GetService(
		ctx context.Context,
		id string,
	) (*models.Service, error)

	// -------- Appointment (create / conflict) --------
	// CreateScheduled probes for a scheduled appointment on the same
	// barber, date and time inside a locking transaction and inserts
	// when the slot is free. A taken slot yields a slot_conflict
	// business error.
	CreateScheduled(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (read / state change) --------
	GetAppointment(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	List(
		ctx context.Context,
		f Filters,
		p Page,
	) ([]models.Appointment, int64, error)
}
