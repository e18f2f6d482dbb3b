package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Client struct {
	ID       string  `gorm:"primaryKey;size:36" json:"id"`
	UserID   *string `gorm:"size:36;index" json:"user_id,omitempty"`
	TenantID string  `gorm:"size:36;index;not null" json:"tenant_id"`

	Name   string `gorm:"size:100;not null" json:"name"`
	Email  string `gorm:"size:100" json:"email"`
	Phone  string `gorm:"size:20" json:"phone"`
	Avatar string `gorm:"size:255" json:"avatar"`

	Notes string `gorm:"size:500" json:"notes"`

	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
