package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-platform/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-platform/internal/httperr"
	"github.com/BruksfildServices01/barber-platform/internal/httpresp"
	"github.com/BruksfildServices01/barber-platform/internal/middleware"
	"github.com/BruksfildServices01/barber-platform/internal/models"
)

type BarberHandler struct {
	db *gorm.DB
}

func NewBarberHandler(db *gorm.DB) *BarberHandler {
	return &BarberHandler{db: db}
}

func (h *BarberHandler) List(c *gin.Context) {
	tenant, ok := requestTenant(c)
	if !ok {
		httperr.Forbidden(c, httperr.CodeAccessDenied, "access denied")
		return
	}

	p := parsePageParams(c, 20, "name", "asc")

	q := h.db.Model(&models.Barber{})
	if tenant != "" {
		q = q.Where("tenant_id = ?", tenant)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ? OR email ILIKE ?", like, like)
	}
	if active := c.Query("is_active"); active != "" {
		q = q.Where("is_active = ?", active == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, httperr.CodePersistence, "failed to list barbers")
		return
	}

	var barbers []models.Barber
	if err := q.
		Order("name " + p.Order).
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&barbers).Error; err != nil {
		httperr.Internal(c, httperr.CodePersistence, "failed to list barbers")
		return
	}

	httpresp.List(c, barbers, total, p.Page, p.Limit)
}

func (h *BarberHandler) Get(c *gin.Context) {
	barber, ok := h.find(c)
	if !ok {
		return
	}
	httpresp.OK(c, barber)
}

type BarberRequest struct {
	UserID      *string  `json:"user_id"`
	Name        string   `json:"name" binding:"required"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Avatar      string   `json:"avatar"`
	Specialties []string `json:"specialties"`
	Experience  string   `json:"experience"`
	Bio         string   `json:"bio"`
	ServiceIDs  []string `json:"services"`
}

func (h *BarberHandler) Create(c *gin.Context) {
	tenant, ok := middleware.TenantID(c)
	if !ok {
		httperr.Forbidden(c, httperr.CodeAccessDenied, "a barbershop scope is required")
		return
	}

	var req BarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "invalid request payload")
		return
	}

	barber := models.Barber{
		UserID:      req.UserID,
		TenantID:    tenant,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Avatar:      req.Avatar,
		Specialties: req.Specialties,
		Experience:  req.Experience,
		Bio:         req.Bio,
		ServiceIDs:  req.ServiceIDs,
		IsActive:    true,
	}
	if err := h.db.Create(&barber).Error; err != nil {
		httperr.Internal(c, httperr.CodePersistence, "failed to create barber")
		return
	}

	httpresp.Created(c, barber)
}

type UpdateBarberRequest struct {
	Name        *string   `json:"name"`
	Email       *string   `json:"email"`
	Phone       *string   `json:"phone"`
	Avatar      *string   `json:"avatar"`
	Specialties *[]string `json:"specialties"`
	Experience  *string   `json:"experience"`
	Bio         *string   `json:"bio"`
	ServiceIDs  *[]string `json:"services"`
	IsActive    *bool     `json:"is_active"`
}

func (h *BarberHandler) Update(c *gin.Context) {
	barber, ok := h.find(c)
	if !ok {
		return
	}

	var req UpdateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "invalid request payload")
		return
	}

	if req.Name != nil {
		barber.Name = *req.Name
	}
	if req.Email != nil {
		barber.Email = *req.Email
	}
	if req.Phone != nil {
		barber.Phone = *req.Phone
	}
	if req.Avatar != nil {
		barber.Avatar = *req.Avatar
	}
	if req.Specialties != nil {
		barber.Specialties = *req.Specialties
	}
	if req.Experience != nil {
		barber.Experience = *req.Experience
	}
	if req.Bio != nil {
		barber.Bio = *req.Bio
	}
	if req.ServiceIDs != nil {
		barber.ServiceIDs = *req.ServiceIDs
	}
	if req.IsActive != nil {
		barber.IsActive = *req.IsActive
	}

	if err := h.db.Save(barber).Error; err != nil {
		httperr.Internal(c, httperr.CodePersistence, "failed to update barber")
		return
	}

	httpresp.OK(c, barber)
}

// Services returns the service records this barber offers.
func (h *BarberHandler) Services(c *gin.Context) {
	barber, ok := h.find(c)
	if !ok {
		return
	}

	var services []models.Service
	if len(barber.ServiceIDs) > 0 {
		if err := h.db.
			Where("id IN ? AND tenant_id = ?", barber.ServiceIDs, barber.TenantID).
			Find(&services).Error; err != nil {
			httperr.Internal(c, httperr.CodePersistence, "failed to list barber services")
			return
		}
	}

	httpresp.OK(c, services)
}

type barberStats struct {
	TotalAppointments int64   `json:"total_appointments"`
	Completed         int64   `json:"completed"`
	Cancelled         int64   `json:"cancelled"`
	Revenue           float64 `json:"revenue"`
	Rating            float64 `json:"rating"`
}

func (h *BarberHandler) Stats(c *gin.Context) {
	barber, ok := h.find(c)
	if !ok {
		return
	}

	base := h.db.Model(&models.Appointment{}).Where("barber_id = ?", barber.ID)

	var stats barberStats
	base.Session(&gorm.Session{}).Count(&stats.TotalAppointments)
	base.Session(&gorm.Session{}).
		Where("status = ?", string(domain.StatusCompleted)).
		Count(&stats.Completed)
	base.Session(&gorm.Session{}).
		Where("status = ?", string(domain.StatusCancelled)).
		Count(&stats.Cancelled)

	var revenue *float64
	base.Session(&gorm.Session{}).
		Where("status = ?", string(domain.StatusCompleted)).
		Select("SUM(price)").
		Scan(&revenue)
	if revenue != nil {
		stats.Revenue = *revenue
	}
	stats.Rating = barber.Rating

	httpresp.OK(c, stats)
}

func (h *BarberHandler) find(c *gin.Context) (*models.Barber, bool) {
	tenant, ok := requestTenant(c)
	if !ok {
		httperr.Forbidden(c, httperr.CodeAccessDenied, "access denied")
		return nil, false
	}

	q := h.db.Where("id = ?", c.Param("id"))
	if tenant != "" {
		q = q.Where("tenant_id = ?", tenant)
	}

	var barber models.Barber
	if err := q.First(&barber).Error; err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "barber not found")
		return nil, false
	}
	return &barber, true
}
