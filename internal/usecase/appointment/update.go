package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-platform/internal/audit"
	domain "github.com/BruksfildServices01/barber-platform/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-platform/internal/httperr"
	"github.com/BruksfildServices01/barber-platform/internal/models"
	"github.com/BruksfildServices01/barber-platform/internal/timezone"
)

// UpdateAppointmentInput is a partial patch; nil fields are untouched.
type UpdateAppointmentInput struct {
	Date   *string
	Time   *string
	Notes  *string
	Status *string
}

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	auditor *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: auditor,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	tenantID string,
	actorID string,
	appointmentID string,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound, "appointment not found")
	}
	if ap.TenantID != tenantID {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound, "appointment not found")
	}

	if in.Date != nil {
		if _, err := time.Parse("2006-01-02", *in.Date); err != nil {
			return nil, httperr.ErrBusiness(httperr.CodeValidation, "invalid appointment date")
		}
		ap.Date = *in.Date
	}
	if in.Time != nil {
		if _, err := time.Parse("15:04", *in.Time); err != nil {
			return nil, httperr.ErrBusiness(httperr.CodeValidation, "invalid appointment time")
		}
		ap.Time = *in.Time
	}
	if in.Notes != nil {
		ap.Notes = *in.Notes
	}

	if in.Status != nil {
		target, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		if err := transition(ap, target); err != nil {
			return nil, err
		}
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   &actorID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

func transition(ap *models.Appointment, target domain.Status) error {
	current := domain.Status(ap.Status)
	if current == target {
		return nil
	}

	now := timezone.Now()
	switch target {
	case domain.StatusCancelled:
		return domain.Cancel(ap, now)
	case domain.StatusCompleted:
		return domain.Complete(ap, now)
	case domain.StatusNoShow:
		return domain.MarkNoShow(ap)
	default:
		return httperr.ErrBusiness(httperr.CodeInvalidState, "appointment cannot return to scheduled")
	}
}
