package appointment

import "github.com/BruksfildServices01/barber-platform/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// legacyStatuses maps values accepted on input for compatibility with
// older clients onto the canonical vocabulary.
var legacyStatuses = map[string]Status{
	"confirmed":   StatusScheduled,
	"in-progress": StatusScheduled,
	"no-show":     StatusNoShow,
}

// ParseStatus normalizes an input status, accepting canonical and
// legacy spellings. Stored values are always canonical.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return Status(raw), nil
	}
	if s, ok := legacyStatuses[raw]; ok {
		return s, nil
	}
	return "", httperr.ErrBusiness(httperr.CodeValidation, "invalid appointment status")
}

// ===============================
// Validations
// ===============================

// CanCancel allows cancelling only appointments still on the book.
func CanCancel(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness(httperr.CodeInvalidState, "appointment cannot be cancelled")
	}
	return nil
}

// CanComplete allows completing only appointments still on the book.
func CanComplete(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness(httperr.CodeInvalidState, "appointment cannot be completed")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
