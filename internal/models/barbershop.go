package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Barbershop is the tenant: every barber, client, service and
// appointment hangs off one via tenant_id.
type Barbershop struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Email   string `gorm:"size:100" json:"email"`
	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`

	Timezone string `gorm:"size:50;default:'America/Sao_Paulo'" json:"timezone"`

	// Scheduling settings
	OpeningTime         string `gorm:"size:5;default:'09:00'" json:"opening_time"`
	ClosingTime         string `gorm:"size:5;default:'19:00'" json:"closing_time"`
	WorkingDays         []int  `gorm:"serializer:json" json:"working_days"` // 0-6, Sunday first
	AppointmentDuration int    `gorm:"default:30" json:"appointment_duration"`
	BookingAdvanceDays  int    `gorm:"default:30" json:"booking_advance_days"`

	// Subscription (managed through the billing service)
	SubscriptionPlan   string     `gorm:"size:20" json:"subscription_plan"`
	SubscriptionStatus string     `gorm:"size:20;default:'pending_approval'" json:"subscription_status"`
	CurrentPeriodStart *time.Time `json:"current_period_start,omitempty"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end,omitempty"`
	PreapprovalID      string     `gorm:"size:64" json:"-"`

	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Barbershop) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
