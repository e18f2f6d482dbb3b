package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-platform/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-platform/internal/httperr"
	"github.com/BruksfildServices01/barber-platform/internal/metrics"
	"github.com/BruksfildServices01/barber-platform/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Referenced entities
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	id string,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *AppointmentGormRepository) GetBarber(
	ctx context.Context,
	id string,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&barber).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id string,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

// slotProbe selects the scheduled appointments holding ap's slot. It is
// a plain count; the partial unique index on (barber_id, date, time)
// WHERE status = 'scheduled' is what actually serializes writers.
func slotProbe(tx *gorm.DB, ap *models.Appointment) *gorm.DB {
	return tx.
		Model(&models.Appointment{}).
		Where(
			"barber_id = ? AND date = ? AND time = ? AND status = ?",
			ap.BarberID,
			ap.Date,
			ap.Time,
			string(domain.StatusScheduled),
		)
}

func slotConflict() error {
	metrics.SlotConflicts.Inc()
	return httperr.ErrBusiness(httperr.CodeSlotConflict, "time slot already booked")
}

// translateSlotError maps a unique violation on the scheduled-slot index
// to the booking conflict error. Requires TranslateError on the gorm
// config so the driver surfaces gorm.ErrDuplicatedKey.
func translateSlotError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return slotConflict()
	}
	return err
}

func (r *AppointmentGormRepository) CreateScheduled(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := slotProbe(tx, ap).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return slotConflict()
		}
		return tx.Create(ap).Error
	})

	// Two creates racing past the probe both reach the insert; the slot
	// index rejects the loser.
	return translateSlotError(err)
}

// --------------------------------------------------
// Appointment (read / state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Barber").
		Preload("Service").
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	// A reschedule can move a still-scheduled appointment onto an
	// occupied slot; the slot index rejects that the same way a create
	// would.
	return translateSlotError(r.db.WithContext(ctx).Save(ap).Error)
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

var listSortColumns = map[string]string{
	"date":       "date",
	"time":       "time",
	"status":     "status",
	"created_at": "created_at",
}

func (r *AppointmentGormRepository) List(
	ctx context.Context,
	f domain.Filters,
	p domain.Page,
) ([]models.Appointment, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.Appointment{})

	if f.TenantID != "" {
		q = q.Where("tenant_id = ?", f.TenantID)
	}
	if f.BarberID != "" {
		q = q.Where("barber_id = ?", f.BarberID)
	}
	if f.ClientID != "" {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if f.ServiceID != "" {
		q = q.Where("service_id = ?", f.ServiceID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Date != "" {
		q = q.Where("date = ?", f.Date)
	}
	if f.DateFrom != "" {
		q = q.Where("date >= ?", f.DateFrom)
	}
	if f.DateTo != "" {
		q = q.Where("date <= ?", f.DateTo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := listSortColumns[p.SortBy]
	if !ok {
		column = "date"
	}
	order := "DESC"
	if p.Order == "asc" {
		order = "ASC"
	}

	orderExpr := fmt.Sprintf("%s %s", column, order)
	if column == "date" {
		orderExpr = fmt.Sprintf("date %s, time %s", order, order)
	}

	var apps []models.Appointment
	err := q.
		Preload("Client").
		Preload("Barber").
		Preload("Service").
		Order(orderExpr).
		Offset((p.Page - 1) * p.Limit).
		Limit(p.Limit).
		Find(&apps).Error
	if err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

// IsNotFound reports whether err is the driver's missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
