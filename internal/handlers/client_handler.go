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

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

func (h *ClientHandler) List(c *gin.Context) {
	tenant, ok := requestTenant(c)
	if !ok {
		httperr.Forbidden(c, httperr.CodeAccessDenied, "access denied")
		return
	}

	p := parsePageParams(c, 20, "name", "asc")

	q := h.db.Model(&models.Client{})
	if tenant != "" {
		q = q.Where("tenant_id = ?", tenant)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?", like, like, like)
	}
	if active := c.Query("is_active"); active != "" {
		q = q.Where("is_active = ?", active == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, httperr.CodePersistence, "failed to list clients")
		return
	}

	var clients []models.Client
	if err := q.
		Order("name " + p.Order).
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&clients).Error; err != nil {
		httperr.Internal(c, httperr.CodePersistence, "failed to list clients")
		return
	}

	httpresp.List(c, clients, total, p.Page, p.Limit)
}

func (h *ClientHandler) Get(c *gin.Context) {
	client, ok := h.find(c)
	if !ok {
		return
	}
	httpresp.OK(c, client)
}

type ClientRequest struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Avatar string `json:"avatar"`
	Notes  string `json:"notes"`
}

func (h *ClientHandler) Create(c *gin.Context) {
	tenant, ok := middleware.TenantID(c)
	if !ok {
		httperr.Forbidden(c, httperr.CodeAccessDenied, "a barbershop scope is required")
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "invalid request payload")
		return
	}

	client := models.Client{
		TenantID: tenant,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Avatar:   req.Avatar,
		Notes:    req.Notes,
		IsActive: true,
	}
	if err := h.db.Create(&client).Error; err != nil {
		httperr.Internal(c, httperr.CodePersistence, "failed to create client")
		return
	}

	httpresp.Created(c, client)
}

type UpdateClientRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Avatar   *string `json:"avatar"`
	Notes    *string `json:"notes"`
	IsActive *bool   `json:"is_active"`
}

func (h *ClientHandler) Update(c *gin.Context) {
	client, ok := h.find(c)
	if !ok {
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "invalid request payload")
		return
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Avatar != nil {
		client.Avatar = *req.Avatar
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
	}
	if req.IsActive != nil {
		client.IsActive = *req.IsActive
	}

	if err := h.db.Save(client).Error; err != nil {
		httperr.Internal(c, httperr.CodePersistence, "failed to update client")
		return
	}

	httpresp.OK(c, client)
}

type clientStats struct {
	TotalAppointments int64   `json:"total_appointments"`
	Completed         int64   `json:"completed"`
	Cancelled         int64   `json:"cancelled"`
	NoShows           int64   `json:"no_shows"`
	TotalSpent        float64 `json:"total_spent"`
}

// Stats aggregates the client's appointment history.
func (h *ClientHandler) Stats(c *gin.Context) {
	client, ok := h.find(c)
	if !ok {
		return
	}

	base := h.db.Model(&models.Appointment{}).Where("client_id = ?", client.ID)

	var stats clientStats
	base.Session(&gorm.Session{}).Count(&stats.TotalAppointments)
	base.Session(&gorm.Session{}).
		Where("status = ?", string(domain.StatusCompleted)).
		Count(&stats.Completed)
	base.Session(&gorm.Session{}).
		Where("status = ?", string(domain.StatusCancelled)).
		Count(&stats.Cancelled)
	base.Session(&gorm.Session{}).
		Where("status = ?", string(domain.StatusNoShow)).
		Count(&stats.NoShows)

	var spent *float64
	base.Session(&gorm.Session{}).
		Where("status = ?", string(domain.StatusCompleted)).
		Select("SUM(price)").
		Scan(&spent)
	if spent != nil {
		stats.TotalSpent = *spent
	}

	httpresp.OK(c, stats)
}

func (h *ClientHandler) find(c *gin.Context) (*models.Client, bool) {
	tenant, ok := requestTenant(c)
	if !ok {
		httperr.Forbidden(c, httperr.CodeAccessDenied, "access denied")
		return nil, false
	}

	q := h.db.Where("id = ?", c.Param("id"))
	if tenant != "" {
		q = q.Where("tenant_id = ?", tenant)
	}

	var client models.Client
	if err := q.First(&client).Error; err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "client not found")
		return nil, false
	}
	return &client, true
}
