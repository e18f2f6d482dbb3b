package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Well-known business error codes.
const (
	CodeInvalidCredentials = "invalid_credentials"
	CodeUserInactive       = "user_inactive"
	CodeTypeMismatch       = "user_type_mismatch"
	CodeNoSessionTemplate  = "session_template_not_found"
	CodeInvalidSession     = "invalid_session"
	CodeAccessDenied       = "access_denied"
	CodeNotFound           = "not_found"
	CodeValidation         = "validation_failed"
	CodeSlotConflict       = "slot_conflict"
	CodeTenantMismatch     = "tenant_mismatch"
	CodeInvalidState       = "invalid_state"
	CodePersistence        = "persistence_failed"
	CodeUnsupported        = "unsupported_operation"
)

type BusinessError struct {
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

func ErrBusiness(code, message string) error {
	return BusinessError{Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func statusFor(code string) int {
	switch code {
	case CodeInvalidCredentials, CodeUserInactive, CodeTypeMismatch, CodeInvalidSession:
		return http.StatusUnauthorized
	case CodeAccessDenied, CodeTenantMismatch:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidation, CodeInvalidState, CodeNoSessionTemplate:
		return http.StatusBadRequest
	case CodeSlotConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// FromError writes the envelope for any error raised by a service or
// use case. Typed business errors map to their status; anything else
// is a 500 carrying only the message.
func FromError(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		Write(c, statusFor(be.Code), be.Code, be.Error())
		return
	}
	Internal(c, "internal_error", err.Error())
}
