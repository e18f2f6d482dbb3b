package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-platform/internal/audit"
	domain "github.com/BruksfildServices01/barber-platform/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-platform/internal/httperr"
	"github.com/BruksfildServices01/barber-platform/internal/metrics"
	"github.com/BruksfildServices01/barber-platform/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	TenantID string
	ActorID  string

	ClientID  string
	BarberID  string
	ServiceID string

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo       domain.Repository
	audit      *audit.Dispatcher
	isNotFound func(error) bool
}

func NewCreateAppointment(
	repo domain.Repository,
	auditor *audit.Dispatcher,
	isNotFound func(error) bool,
) *CreateAppointment {
	return &CreateAppointment{
		repo:       repo,
		audit:      auditor,
		isNotFound: isNotFound,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute validates the three referenced entities in a fixed order
// (client, barber, service), then tenant ownership, and hands the slot
// conflict check to the repository's locking insert.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeValidation, "invalid appointment date")
	}
	if _, err := time.Parse("15:04", in.Time); err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeValidation, "invalid appointment time")
	}

	client, err := uc.repo.GetClient(ctx, in.ClientID)
	if err != nil {
		if uc.isNotFound(err) {
			return nil, httperr.ErrBusiness(httperr.CodeNotFound, "client not found")
		}
		return nil, err
	}

	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		if uc.isNotFound(err) {
			return nil, httperr.ErrBusiness(httperr.CodeNotFound, "barber not found")
		}
		return nil, err
	}

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		if uc.isNotFound(err) {
			return nil, httperr.ErrBusiness(httperr.CodeNotFound, "service not found")
		}
		return nil, err
	}

	if client.TenantID != in.TenantID ||
		barber.TenantID != in.TenantID ||
		service.TenantID != in.TenantID {
		return nil, httperr.ErrBusiness(httperr.CodeTenantMismatch, "entities belong to another barbershop")
	}

	ap := &models.Appointment{
		TenantID:  in.TenantID,
		ClientID:  client.ID,
		BarberID:  barber.ID,
		ServiceID: service.ID,
		Date:      in.Date,
		Time:      in.Time,
		Duration:  service.Duration,
		Price:     service.Price,
		Status:    string(domain.InitialStatus()),
		Notes:     in.Notes,
	}

	if err := uc.repo.CreateScheduled(ctx, ap); err != nil {
		return nil, err
	}

	metrics.AppointmentsCreated.Inc()

	uc.audit.Dispatch(audit.Event{
		TenantID: in.TenantID,
		UserID:   &in.ActorID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	ap.Client = *client
	ap.Barber = *barber
	ap.Service = *service
	return ap, nil
}
