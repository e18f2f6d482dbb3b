package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Appointment struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	TenantID string `gorm:"size:36;index;not null" json:"tenant_id"`

	ClientID string `gorm:"size:36;index;not null" json:"client_id"`
	Client   Client `gorm:"foreignKey:ClientID" json:"-"`

	BarberID string `gorm:"size:36;index:idx_barber_slot;not null" json:"barber_id"`
	Barber   Barber `gorm:"foreignKey:BarberID" json:"-"`

	ServiceID string  `gorm:"size:36;index;not null" json:"service_id"`
	Service   Service `gorm:"foreignKey:ServiceID" json:"-"`

	Date string `gorm:"size:10;index:idx_barber_slot;not null" json:"date"` // 2006-01-02
	Time string `gorm:"size:5;index:idx_barber_slot;not null" json:"time"`  // 15:04

	// Snapshotted from the service at creation so history is stable.
	Duration int     `json:"duration"`
	Price    float64 `json:"price"`

	Status string `gorm:"size:20;default:'scheduled';index" json:"status"`
	Notes  string `gorm:"size:255" json:"notes,omitempty"`

	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
