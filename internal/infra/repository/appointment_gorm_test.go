package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-platform/internal/httperr"
	"github.com/BruksfildServices01/barber-platform/internal/models"
)

// newDryRunDB builds a gorm handle that renders SQL without touching a
// server.
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=none dbname=none",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		TranslateError:       true,
	})
	require.NoError(t, err)
	return db
}

func TestSlotProbeRendersPlainCount(t *testing.T) {
	db := newDryRunDB(t)

	ap := &models.Appointment{
		BarberID: "b1",
		Date:     "2026-09-01",
		Time:     "10:00",
	}

	var count int64
	stmt := slotProbe(db, ap).Count(&count).Statement
	sql := stmt.SQL.String()

	// Postgres rejects locking clauses on aggregate queries, so the
	// existence probe must stay a plain count.
	assert.Contains(t, sql, "count(*)")
	assert.NotContains(t, sql, "FOR UPDATE")
	assert.Contains(t, sql, "barber_id = $1 AND date = $2 AND time = $3 AND status = $4")
}

func TestTranslateSlotError(t *testing.T) {
	err := translateSlotError(gorm.ErrDuplicatedKey)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotConflict),
		"a unique violation on the slot index is a booking conflict")

	// Anything else passes through untouched.
	assert.Equal(t, gorm.ErrRecordNotFound, translateSlotError(gorm.ErrRecordNotFound))
	assert.NoError(t, translateSlotError(nil))
}
