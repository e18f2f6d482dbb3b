package httperr

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{CodeInvalidCredentials, http.StatusUnauthorized},
		{CodeUserInactive, http.StatusUnauthorized},
		{CodeTypeMismatch, http.StatusUnauthorized},
		{CodeInvalidSession, http.StatusUnauthorized},
		{CodeAccessDenied, http.StatusForbidden},
		{CodeTenantMismatch, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeValidation, http.StatusBadRequest},
		{CodeInvalidState, http.StatusBadRequest},
		{CodeSlotConflict, http.StatusConflict},
		{CodePersistence, http.StatusInternalServerError},
		{"something_unknown", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.code))
		})
	}
}

func TestIsBusiness(t *testing.T) {
	err := ErrBusiness(CodeSlotConflict, "time slot already booked")
	assert.True(t, IsBusiness(err, CodeSlotConflict))
	assert.False(t, IsBusiness(err, CodeNotFound))
	assert.False(t, IsBusiness(errors.New("plain"), CodeSlotConflict))
}

func TestFromErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	FromError(c, ErrBusiness(CodeSlotConflict, "time slot already booked"))

	require.Equal(t, http.StatusConflict, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"success":false`)
	assert.Contains(t, body, `"code":"slot_conflict"`)
	assert.Contains(t, body, `"error":"time slot already booked"`)
	assert.Contains(t, body, `"status":409`)
}

func TestFromErrorUnknownErrorIs500(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	FromError(c, errors.New("disk on fire"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "disk on fire")
}
