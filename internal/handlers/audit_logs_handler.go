package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-platform/internal/httperr"
	"github.com/BruksfildServices01/barber-platform/internal/httpresp"
	"github.com/BruksfildServices01/barber-platform/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List returns the tenant's audit trail, newest first.
func (h *AuditLogsHandler) List(c *gin.Context) {
	tenant, ok := requestTenant(c)
	if !ok {
		httperr.Forbidden(c, httperr.CodeAccessDenied, "access denied")
		return
	}

	p := parsePageParams(c, 50, "created_at", "desc")

	q := h.db.Model(&models.AuditLog{})
	if tenant != "" {
		q = q.Where("tenant_id = ?", tenant)
	}
	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, httperr.CodePersistence, "failed to list audit logs")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at " + p.Order).
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&logs).Error; err != nil {
		httperr.Internal(c, httperr.CodePersistence, "failed to list audit logs")
		return
	}

	httpresp.List(c, logs, total, p.Page, p.Limit)
}
