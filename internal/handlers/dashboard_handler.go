package handlers

import (
	"math"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-platform/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-platform/internal/httperr"
	"github.com/BruksfildServices01/barber-platform/internal/httpresp"
	"github.com/BruksfildServices01/barber-platform/internal/middleware"
	"github.com/BruksfildServices01/barber-platform/internal/models"
	"github.com/BruksfildServices01/barber-platform/internal/roles"
	"github.com/BruksfildServices01/barber-platform/internal/timezone"
)

type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

type appointmentTotals struct {
	Total     int64   `json:"total"`
	Scheduled int64   `json:"scheduled"`
	Completed int64   `json:"completed"`
	Cancelled int64   `json:"cancelled"`
	NoShows   int64   `json:"no_shows"`
	Revenue   float64 `json:"revenue"`
	// completed / total, zero when there is no history.
	CompletionRate float64 `json:"completion_rate"`
}

// Stats dispatches on the caller's role: admins see their shop,
// barbers and clients see their own history, super admins the whole
// platform.
func (h *DashboardHandler) Stats(c *gin.Context) {
	q := h.db.Model(&models.Appointment{})

	switch middleware.Role(c) {
	case roles.SuperAdmin:
		// unscoped
	case roles.Barber:
		var barber models.Barber
		if err := h.db.Where("user_id = ?", middleware.UserID(c)).First(&barber).Error; err != nil {
			httperr.Forbidden(c, httperr.CodeAccessDenied, "no barber profile for user")
			return
		}
		q = q.Where("barber_id = ?", barber.ID)
	case roles.Client:
		var client models.Client
		if err := h.db.Where("user_id = ?", middleware.UserID(c)).First(&client).Error; err != nil {
			httperr.Forbidden(c, httperr.CodeAccessDenied, "no client profile for user")
			return
		}
		q = q.Where("client_id = ?", client.ID)
	default:
		tenant, ok := middleware.TenantID(c)
		if !ok {
			httperr.Forbidden(c, httperr.CodeAccessDenied, "access denied")
			return
		}
		q = q.Where("tenant_id = ?", tenant)
	}

	httpresp.OK(c, h.totals(q))
}

type globalStats struct {
	Barbershops  int64             `json:"barbershops"`
	Users        int64             `json:"users"`
	Appointments appointmentTotals `json:"appointments"`
}

// Global is the platform-wide rollup; route-gated to super admins.
func (h *DashboardHandler) Global(c *gin.Context) {
	if middleware.Role(c) != roles.SuperAdmin {
		httperr.Forbidden(c, httperr.CodeAccessDenied, "access denied")
		return
	}

	var stats globalStats
	h.db.Model(&models.Barbershop{}).Count(&stats.Barbershops)
	h.db.Model(&models.User{}).Count(&stats.Users)
	stats.Appointments = h.totals(h.db.Model(&models.Appointment{}))

	httpresp.OK(c, stats)
}

type realtimeStats struct {
	Date           string  `json:"date"`
	ScheduledToday int64   `json:"scheduled_today"`
	CompletedToday int64   `json:"completed_today"`
	RevenueToday   float64 `json:"revenue_today"`
	ActiveBarbers  int64   `json:"active_barbers"`
}

func (h *DashboardHandler) Realtime(c *gin.Context) {
	tenant, ok := requestTenant(c)
	if !ok {
		httperr.Forbidden(c, httperr.CodeAccessDenied, "access denied")
		return
	}

	today := timezone.Today(h.tenantTZ(tenant))

	base := h.db.Model(&models.Appointment{}).Where("date = ?", today)
	barbers := h.db.Model(&models.Barber{}).Where("is_active = ?", true)
	if tenant != "" {
		base = base.Where("tenant_id = ?", tenant)
		barbers = barbers.Where("tenant_id = ?", tenant)
	}

	stats := realtimeStats{Date: today}
	base.Session(&gorm.Session{}).
		Where("status = ?", string(domain.StatusScheduled)).
		Count(&stats.ScheduledToday)
	base.Session(&gorm.Session{}).
		Where("status = ?", string(domain.StatusCompleted)).
		Count(&stats.CompletedToday)

	var revenue *float64
	base.Session(&gorm.Session{}).
		Where("status = ?", string(domain.StatusCompleted)).
		Select("SUM(price)").
		Scan(&revenue)
	if revenue != nil {
		stats.RevenueToday = *revenue
	}
	barbers.Count(&stats.ActiveBarbers)

	httpresp.OK(c, stats)
}

type monthlyReport struct {
	Month        string            `json:"month"`
	Appointments appointmentTotals `json:"appointments"`
	NewClients   int64             `json:"new_clients"`
}

// Monthly reports on a calendar month, defaulting to the current one.
// Accepts ?month=2026-08.
func (h *DashboardHandler) Monthly(c *gin.Context) {
	tenant, ok := requestTenant(c)
	if !ok {
		httperr.Forbidden(c, httperr.CodeAccessDenied, "access denied")
		return
	}

	month := c.Query("month")
	if month == "" {
		month = timezone.NowIn(h.tenantTZ(tenant)).Format("2006-01")
	}
	start, err := time.Parse("2006-01", month)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "month must be formatted as 2006-01")
		return
	}
	end := start.AddDate(0, 1, 0)

	q := h.db.Model(&models.Appointment{}).
		Where("date >= ? AND date < ?", start.Format("2006-01-02"), end.Format("2006-01-02"))
	clients := h.db.Model(&models.Client{}).
		Where("created_at >= ? AND created_at < ?", start, end)
	if tenant != "" {
		q = q.Where("tenant_id = ?", tenant)
		clients = clients.Where("tenant_id = ?", tenant)
	}

	report := monthlyReport{Month: month}
	report.Appointments = h.totals(q)
	clients.Count(&report.NewClients)

	httpresp.OK(c, report)
}

func (h *DashboardHandler) totals(q *gorm.DB) appointmentTotals {
	var t appointmentTotals
	q.Session(&gorm.Session{}).Count(&t.Total)
	q.Session(&gorm.Session{}).
		Where("status = ?", string(domain.StatusScheduled)).Count(&t.Scheduled)
	q.Session(&gorm.Session{}).
		Where("status = ?", string(domain.StatusCompleted)).Count(&t.Completed)
	q.Session(&gorm.Session{}).
		Where("status = ?", string(domain.StatusCancelled)).Count(&t.Cancelled)
	q.Session(&gorm.Session{}).
		Where("status = ?", string(domain.StatusNoShow)).Count(&t.NoShows)

	var revenue *float64
	q.Session(&gorm.Session{}).
		Where("status = ?", string(domain.StatusCompleted)).
		Select("SUM(price)").
		Scan(&revenue)
	if revenue != nil {
		t.Revenue = *revenue
	}

	if t.Total > 0 {
		rate := float64(t.Completed) / float64(t.Total)
		t.CompletionRate = math.Round(rate*100) / 100
	}
	return t
}

func (h *DashboardHandler) tenantTZ(tenantID string) string {
	if tenantID == "" {
		return timezone.DefaultTimezone
	}
	var shop models.Barbershop
	if err := h.db.Select("timezone").Where("id = ?", tenantID).First(&shop).Error; err != nil {
		return timezone.DefaultTimezone
	}
	return shop.Timezone
}
