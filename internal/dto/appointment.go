package dto

import (
	"time"

	"github.com/BruksfildServices01/barber-platform/internal/models"
)

// Listing responses embed slim summaries of the joined records so
// clients do not need follow-up lookups.

type ClientSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type BarberSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

type ServiceSummary struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Duration int     `json:"duration"`
	Price    float64 `json:"price"`
}

type AppointmentDetails struct {
	ID       string `json:"id"`
	TenantID string `json:"tenant_id"`

	Client  ClientSummary  `json:"client"`
	Barber  BarberSummary  `json:"barber"`
	Service ServiceSummary `json:"service"`

	Date     string  `json:"date"`
	Time     string  `json:"time"`
	Duration int     `json:"duration"`
	Price    float64 `json:"price"`

	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`

	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewAppointmentDetails(ap *models.Appointment) AppointmentDetails {
	d := AppointmentDetails{
		ID:       ap.ID,
		TenantID: ap.TenantID,
		Client: ClientSummary{
			ID:    ap.ClientID,
			Name:  ap.Client.Name,
			Email: ap.Client.Email,
			Phone: ap.Client.Phone,
		},
		Barber: BarberSummary{
			ID:     ap.BarberID,
			Name:   ap.Barber.Name,
			Avatar: ap.Barber.Avatar,
		},
		Service: ServiceSummary{
			ID:       ap.ServiceID,
			Name:     ap.Service.Name,
			Duration: ap.Duration,
			Price:    ap.Price,
		},
		Date:        ap.Date,
		Time:        ap.Time,
		Duration:    ap.Duration,
		Price:       ap.Price,
		Status:      ap.Status,
		Notes:       ap.Notes,
		CompletedAt: ap.CompletedAt,
		CancelledAt: ap.CancelledAt,
		CreatedAt:   ap.CreatedAt,
		UpdatedAt:   ap.UpdatedAt,
	}
	return d
}

func NewAppointmentDetailsList(aps []models.Appointment) []AppointmentDetails {
	out := make([]AppointmentDetails, 0, len(aps))
	for i := range aps {
		out = append(out, NewAppointmentDetails(&aps[i]))
	}
	return out
}
