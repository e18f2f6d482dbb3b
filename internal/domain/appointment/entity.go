package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-platform/internal/httperr"
	"github.com/BruksfildServices01/barber-platform/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// MarkNoShow flags a scheduled appointment whose client never arrived.
func MarkNoShow(ap *models.Appointment) error {
	if Status(ap.Status) != StatusScheduled {
		return httperr.ErrBusiness(httperr.CodeInvalidState, "appointment cannot be marked as no-show")
	}

	ap.Status = string(StatusNoShow)
	return nil
}
