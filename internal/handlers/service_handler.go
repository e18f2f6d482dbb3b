package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-platform/internal/httperr"
	"github.com/BruksfildServices01/barber-platform/internal/httpresp"
	"github.com/BruksfildServices01/barber-platform/internal/middleware"
	"github.com/BruksfildServices01/barber-platform/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

func (h *ServiceHandler) List(c *gin.Context) {
	tenant, ok := requestTenant(c)
	if !ok {
		httperr.Forbidden(c, httperr.CodeAccessDenied, "access denied")
		return
	}

	p := parsePageParams(c, 20, "name", "asc")

	q := h.db.Model(&models.Service{})
	if tenant != "" {
		q = q.Where("tenant_id = ?", tenant)
	}
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}
	if active := c.Query("is_active"); active != "" {
		q = q.Where("is_active = ?", active == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, httperr.CodePersistence, "failed to list services")
		return
	}

	var services []models.Service
	if err := q.
		Order("name " + p.Order).
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&services).Error; err != nil {
		httperr.Internal(c, httperr.CodePersistence, "failed to list services")
		return
	}

	httpresp.List(c, services, total, p.Page, p.Limit)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	service, ok := h.find(c)
	if !ok {
		return
	}
	httpresp.OK(c, service)
}

type ServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Duration    int     `json:"duration" binding:"required,gt=0"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Category    string  `json:"category"`
}

func (h *ServiceHandler) Create(c *gin.Context) {
	tenant, ok := middleware.TenantID(c)
	if !ok {
		httperr.Forbidden(c, httperr.CodeAccessDenied, "a barbershop scope is required")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "invalid request payload")
		return
	}

	service := models.Service{
		TenantID:    tenant,
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.Duration,
		Price:       req.Price,
		Category:    req.Category,
		IsActive:    true,
	}
	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, httperr.CodePersistence, "failed to create service")
		return
	}

	httpresp.Created(c, service)
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Duration    *int     `json:"duration"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	IsActive    *bool    `json:"is_active"`
}

func (h *ServiceHandler) Update(c *gin.Context) {
	service, ok := h.find(c)
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "invalid request payload")
		return
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.Duration != nil {
		if *req.Duration <= 0 {
			httperr.BadRequest(c, httperr.CodeValidation, "duration must be positive")
			return
		}
		service.Duration = *req.Duration
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			httperr.BadRequest(c, httperr.CodeValidation, "price must be positive")
			return
		}
		service.Price = *req.Price
	}
	if req.Category != nil {
		service.Category = *req.Category
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := h.db.Save(service).Error; err != nil {
		httperr.Internal(c, httperr.CodePersistence, "failed to update service")
		return
	}

	httpresp.OK(c, service)
}

// Delete is soft: the service is flagged inactive so past
// appointments keep their reference.
func (h *ServiceHandler) Delete(c *gin.Context) {
	service, ok := h.find(c)
	if !ok {
		return
	}

	service.IsActive = false
	if err := h.db.Save(service).Error; err != nil {
		httperr.Internal(c, httperr.CodePersistence, "failed to delete service")
		return
	}

	httpresp.OK(c, gin.H{"message": "service deactivated"})
}

// Categories lists the distinct categories in use by the tenant.
func (h *ServiceHandler) Categories(c *gin.Context) {
	tenant, ok := requestTenant(c)
	if !ok {
		httperr.Forbidden(c, httperr.CodeAccessDenied, "access denied")
		return
	}

	q := h.db.Model(&models.Service{}).Where("category <> ''")
	if tenant != "" {
		q = q.Where("tenant_id = ?", tenant)
	}

	var categories []string
	if err := q.Distinct().Pluck("category", &categories).Error; err != nil {
		httperr.Internal(c, httperr.CodePersistence, "failed to list categories")
		return
	}

	httpresp.OK(c, categories)
}

func (h *ServiceHandler) find(c *gin.Context) (*models.Service, bool) {
	tenant, ok := requestTenant(c)
	if !ok {
		httperr.Forbidden(c, httperr.CodeAccessDenied, "access denied")
		return nil, false
	}

	q := h.db.Where("id = ?", c.Param("id"))
	if tenant != "" {
		q = q.Where("tenant_id = ?", tenant)
	}

	var service models.Service
	if err := q.First(&service).Error; err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "service not found")
		return nil, false
	}
	return &service, true
}
