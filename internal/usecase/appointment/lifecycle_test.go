package appointment

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-platform/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-platform/internal/httperr"
	"github.com/BruksfildServices01/barber-platform/internal/models"
)

func createOne(t *testing.T, repo *fakeRepo) string {
	t.Helper()
	uc := NewCreateAppointment(repo, nil, fakeIsNotFound)
	ap, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)
	return ap.ID
}

func TestCancelAppointment(t *testing.T) {
	repo := seededRepo()
	id := createOne(t, repo)

	uc := NewCancelAppointment(repo, nil)
	ap, err := uc.Execute(context.Background(), "shop-1", "user-1", id)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), ap.Status)
	require.NotNil(t, ap.CancelledAt)

	// Cancelling again is an invalid transition, not a repeat success.
	_, err = uc.Execute(context.Background(), "shop-1", "user-1", id)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))
}

func TestCancelAppointmentForeignTenantLooksAbsent(t *testing.T) {
	repo := seededRepo()
	id := createOne(t, repo)

	uc := NewCancelAppointment(repo, nil)
	_, err := uc.Execute(context.Background(), "shop-2", "user-9", id)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
}

func TestCompleteAppointment(t *testing.T) {
	repo := seededRepo()
	id := createOne(t, repo)

	uc := NewCompleteAppointment(repo, nil)
	ap, err := uc.Execute(context.Background(), "shop-1", "user-1", id)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCompleted), ap.Status)
	require.NotNil(t, ap.CompletedAt)
}

func TestUpdateAppointmentPatchesFields(t *testing.T) {
	repo := seededRepo()
	id := createOne(t, repo)

	newTime := "11:30"
	notes := "client asked for a fade"
	uc := NewUpdateAppointment(repo, nil)

	ap, err := uc.Execute(context.Background(), "shop-1", "user-1", id, UpdateAppointmentInput{
		Time:  &newTime,
		Notes: &notes,
	})
	require.NoError(t, err)

	assert.Equal(t, "11:30", ap.Time)
	assert.Equal(t, notes, ap.Notes)
	assert.Equal(t, "2026-09-01", ap.Date, "unset fields stay put")
}

func TestUpdateAppointmentRescheduleOntoTakenSlot(t *testing.T) {
	repo := seededRepo()
	createOne(t, repo)

	create := NewCreateAppointment(repo, nil, fakeIsNotFound)
	in := validInput()
	in.Time = "14:00"
	second, err := create.Execute(context.Background(), in)
	require.NoError(t, err)

	taken := "10:00"
	uc := NewUpdateAppointment(repo, nil)
	_, err = uc.Execute(context.Background(), "shop-1", "user-1", second.ID, UpdateAppointmentInput{
		Time: &taken,
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotConflict))
}

func TestUpdateAppointmentStatusTransitions(t *testing.T) {
	tests := []struct {
		name       string
		status     string
		wantStatus string
		wantErr    bool
	}{
		{"to completed", "completed", string(domain.StatusCompleted), false},
		{"to cancelled", "cancelled", string(domain.StatusCancelled), false},
		{"legacy no-show", "no-show", string(domain.StatusNoShow), false},
		{"same status is a no-op", "scheduled", string(domain.StatusScheduled), false},
		{"unknown status", "done", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := seededRepo()
			id := createOne(t, repo)

			uc := NewUpdateAppointment(repo, nil)
			ap, err := uc.Execute(context.Background(), "shop-1", "user-1", id, UpdateAppointmentInput{
				Status: &tt.status,
			})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, ap.Status)
		})
	}
}

func TestUpdateAppointmentStampsTimestamps(t *testing.T) {
	repo := seededRepo()
	id := createOne(t, repo)

	completed := "completed"
	uc := NewUpdateAppointment(repo, nil)
	ap, err := uc.Execute(context.Background(), "shop-1", "user-1", id, UpdateAppointmentInput{
		Status: &completed,
	})
	require.NoError(t, err)
	assert.NotNil(t, ap.CompletedAt)
	assert.Nil(t, ap.CancelledAt)
}

func TestListAppointmentsDefaults(t *testing.T) {
	repo := seededRepo()
	createOne(t, repo)

	uc := NewListAppointments(repo)
	page, err := uc.Execute(context.Background(), domain.Filters{TenantID: "shop-1"}, domain.Page{})
	require.NoError(t, err)

	assert.Equal(t, 20, repo.lastPage.Limit)
	assert.Equal(t, "date", repo.lastPage.SortBy)
	assert.Equal(t, "desc", repo.lastPage.Order)
	assert.Equal(t, 1, repo.lastPage.Page)

	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 1, page.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Carlos", page.Items[0].Barber.Name)
}

func TestListAppointmentsNormalizesLegacyStatusFilter(t *testing.T) {
	repo := seededRepo()
	createOne(t, repo)

	uc := NewListAppointments(repo)
	page, err := uc.Execute(context.Background(), domain.Filters{
		TenantID: "shop-1",
		Status:   "confirmed",
	}, domain.Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total, "legacy 'confirmed' matches stored 'scheduled'")
}

func TestListAppointmentsPagesPartitionTheSet(t *testing.T) {
	repo := seededRepo()
	for i := 0; i < 25; i++ {
		id := fmt.Sprintf("ap-%02d", i)
		repo.appointments[id] = &models.Appointment{
			ID:       id,
			TenantID: "shop-1",
			BarberID: "b1",
			ClientID: "c1",
			Date:     "2026-09-01",
			Time:     fmt.Sprintf("%02d:00", i),
			Status:   string(domain.StatusScheduled),
		}
	}
	// Another tenant's rows must never leak into the pages.
	repo.appointments["other"] = &models.Appointment{
		ID: "other", TenantID: "shop-2", BarberID: "b2",
		Status: string(domain.StatusScheduled),
	}

	uc := NewListAppointments(repo)
	filters := domain.Filters{TenantID: "shop-1"}

	seen := map[string]int{}
	first, err := uc.Execute(context.Background(), filters, domain.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(25), first.Total)
	assert.Equal(t, 3, first.TotalPages)

	for page := 1; page <= first.TotalPages; page++ {
		res, err := uc.Execute(context.Background(), filters, domain.Page{Page: page, Limit: 10})
		require.NoError(t, err)
		for _, item := range res.Items {
			seen[item.ID]++
		}
	}

	require.Len(t, seen, 25, "concatenated pages cover the filtered set")
	for id, n := range seen {
		assert.Equal(t, 1, n, "appointment %s appears exactly once", id)
	}
	assert.NotContains(t, seen, "other")
}

func TestListAppointmentsCapsLimit(t *testing.T) {
	repo := seededRepo()
	uc := NewListAppointments(repo)

	_, err := uc.Execute(context.Background(), domain.Filters{}, domain.Page{Limit: 10000})
	require.NoError(t, err)
	assert.Equal(t, 100, repo.lastPage.Limit)
}
