package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-platform/internal/billing"
	domain "github.com/BruksfildServices01/barber-platform/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-platform/internal/httperr"
	"github.com/BruksfildServices01/barber-platform/internal/httpresp"
	"github.com/BruksfildServices01/barber-platform/internal/middleware"
	"github.com/BruksfildServices01/barber-platform/internal/models"
	"github.com/BruksfildServices01/barber-platform/internal/roles"
	"github.com/BruksfildServices01/barber-platform/internal/timezone"
)

type BarbershopHandler struct {
	db      *gorm.DB
	billing *billing.Service
}

func NewBarbershopHandler(db *gorm.DB, billingSvc *billing.Service) *BarbershopHandler {
	return &BarbershopHandler{db: db, billing: billingSvc}
}

func (h *BarbershopHandler) List(c *gin.Context) {
	p := parsePageParams(c, 20, "name", "asc")

	q := h.db.Model(&models.Barbershop{})
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ?", like)
	}
	if active := c.Query("is_active"); active != "" {
		q = q.Where("is_active = ?", active == "true")
	}
	if plan := c.Query("subscription_plan"); plan != "" {
		q = q.Where("subscription_plan = ?", plan)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, httperr.CodePersistence, "failed to list barbershops")
		return
	}

	var shops []models.Barbershop
	if err := q.
		Order("name " + p.Order).
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&shops).Error; err != nil {
		httperr.Internal(c, httperr.CodePersistence, "failed to list barbershops")
		return
	}

	httpresp.List(c, shops, total, p.Page, p.Limit)
}

func (h *BarbershopHandler) Get(c *gin.Context) {
	shop, ok := h.find(c)
	if !ok {
		return
	}
	httpresp.OK(c, shop)
}

type UpdateBarbershopRequest struct {
	Name                *string `json:"name"`
	Email               *string `json:"email"`
	Phone               *string `json:"phone"`
	Address             *string `json:"address"`
	Timezone            *string `json:"timezone"`
	OpeningTime         *string `json:"opening_time"`
	ClosingTime         *string `json:"closing_time"`
	WorkingDays         *[]int  `json:"working_days"`
	AppointmentDuration *int    `json:"appointment_duration"`
	BookingAdvanceDays  *int    `json:"booking_advance_days"`
	IsActive            *bool   `json:"is_active"`
}

func (h *BarbershopHandler) Update(c *gin.Context) {
	shop, ok := h.find(c)
	if !ok {
		return
	}

	var req UpdateBarbershopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "invalid request payload")
		return
	}

	if req.Name != nil {
		shop.Name = *req.Name
	}
	if req.Email != nil {
		shop.Email = *req.Email
	}
	if req.Phone != nil {
		shop.Phone = *req.Phone
	}
	if req.Address != nil {
		shop.Address = *req.Address
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, httperr.CodeValidation, "unknown timezone")
			return
		}
		shop.Timezone = *req.Timezone
	}
	if req.OpeningTime != nil {
		shop.OpeningTime = *req.OpeningTime
	}
	if req.ClosingTime != nil {
		shop.ClosingTime = *req.ClosingTime
	}
	if req.WorkingDays != nil {
		shop.WorkingDays = *req.WorkingDays
	}
	if req.AppointmentDuration != nil {
		shop.AppointmentDuration = *req.AppointmentDuration
	}
	if req.BookingAdvanceDays != nil {
		shop.BookingAdvanceDays = *req.BookingAdvanceDays
	}
	if req.IsActive != nil {
		if middleware.Role(c) != roles.SuperAdmin {
			httperr.Forbidden(c, httperr.CodeAccessDenied, "only platform admins can toggle a barbershop")
			return
		}
		shop.IsActive = *req.IsActive
	}

	if err := h.db.Save(shop).Error; err != nil {
		httperr.Internal(c, httperr.CodePersistence, "failed to update barbershop")
		return
	}

	httpresp.OK(c, shop)
}

type barbershopStats struct {
	Barbers      int64   `json:"barbers"`
	Clients      int64   `json:"clients"`
	Services     int64   `json:"services"`
	Appointments int64   `json:"appointments"`
	Revenue      float64 `json:"revenue"`
}

func (h *BarbershopHandler) Stats(c *gin.Context) {
	shop, ok := h.find(c)
	if !ok {
		return
	}

	var stats barbershopStats
	h.db.Model(&models.Barber{}).Where("tenant_id = ?", shop.ID).Count(&stats.Barbers)
	h.db.Model(&models.Client{}).Where("tenant_id = ?", shop.ID).Count(&stats.Clients)
	h.db.Model(&models.Service{}).Where("tenant_id = ?", shop.ID).Count(&stats.Services)
	h.db.Model(&models.Appointment{}).Where("tenant_id = ?", shop.ID).Count(&stats.Appointments)

	var revenue *float64
	h.db.Model(&models.Appointment{}).
		Where("tenant_id = ? AND status = ?", shop.ID, string(domain.StatusCompleted)).
		Select("SUM(price)").
		Scan(&revenue)
	if revenue != nil {
		stats.Revenue = *revenue
	}

	httpresp.OK(c, stats)
}

// --------- Subscription ---------

func (h *BarbershopHandler) Plans(c *gin.Context) {
	plans := make([]billing.Plan, 0, len(billing.Plans))
	for _, p := range billing.Plans {
		plans = append(plans, p)
	}
	httpresp.OK(c, plans)
}

type SubscribeRequest struct {
	PlanID     string `json:"plan_id" binding:"required"`
	PayerEmail string `json:"payer_email" binding:"required,email"`
	BackURL    string `json:"back_url" binding:"required"`
}

func (h *BarbershopHandler) Subscribe(c *gin.Context) {
	if h.billing == nil {
		httperr.BadRequest(c, httperr.CodeUnsupported, "billing is not configured")
		return
	}

	shop, ok := h.find(c)
	if !ok {
		return
	}

	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "invalid request payload")
		return
	}

	result, err := h.billing.Subscribe(c.Request.Context(), shop, req.PlanID, req.PayerEmail, req.BackURL)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, result)
}

// Subscription refreshes the gateway state and returns it.
func (h *BarbershopHandler) Subscription(c *gin.Context) {
	if h.billing == nil {
		httperr.BadRequest(c, httperr.CodeUnsupported, "billing is not configured")
		return
	}

	shop, ok := h.find(c)
	if !ok {
		return
	}

	if err := h.billing.Refresh(c.Request.Context(), shop); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"plan":                 shop.SubscriptionPlan,
		"status":               shop.SubscriptionStatus,
		"current_period_start": shop.CurrentPeriodStart,
		"current_period_end":   shop.CurrentPeriodEnd,
	})
}

func (h *BarbershopHandler) CancelSubscription(c *gin.Context) {
	if h.billing == nil {
		httperr.BadRequest(c, httperr.CodeUnsupported, "billing is not configured")
		return
	}

	shop, ok := h.find(c)
	if !ok {
		return
	}

	if err := h.billing.Cancel(c.Request.Context(), shop); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"status": shop.SubscriptionStatus})
}

// find loads the target shop; non-super-admins can only reach their
// own.
func (h *BarbershopHandler) find(c *gin.Context) (*models.Barbershop, bool) {
	id := c.Param("id")

	if middleware.Role(c) != roles.SuperAdmin {
		tenant, ok := middleware.TenantID(c)
		if !ok || tenant != id {
			httperr.NotFound(c, httperr.CodeNotFound, "barbershop not found")
			return nil, false
		}
	}

	var shop models.Barbershop
	if err := h.db.Where("id = ?", id).First(&shop).Error; err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "barbershop not found")
		return nil, false
	}
	return &shop, true
}
