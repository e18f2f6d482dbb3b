package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Barber struct {
	ID       string  `gorm:"primaryKey;size:36" json:"id"`
	UserID   *string `gorm:"size:36;index" json:"user_id,omitempty"`
	TenantID string  `gorm:"size:36;index;not null" json:"tenant_id"`

	Name   string `gorm:"size:100;not null" json:"name"`
	Email  string `gorm:"size:100" json:"email"`
	Phone  string `gorm:"size:20" json:"phone"`
	Avatar string `gorm:"size:255" json:"avatar"`

	Specialties []string `gorm:"serializer:json" json:"specialties"`
	Experience  string   `gorm:"size:50" json:"experience"`
	Bio         string   `gorm:"size:500" json:"bio"`

	// Service IDs this barber offers.
	ServiceIDs []string `gorm:"serializer:json" json:"services"`

	// Report field, refreshed from completed appointments; never treat
	// as an authoritative counter.
	Rating float64 `json:"rating"`

	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Barber) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
