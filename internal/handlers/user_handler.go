package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-platform/internal/httperr"
	"github.com/BruksfildServices01/barber-platform/internal/httpresp"
	"github.com/BruksfildServices01/barber-platform/internal/middleware"
	"github.com/BruksfildServices01/barber-platform/internal/models"
	"github.com/BruksfildServices01/barber-platform/internal/roles"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

var userSortColumns = map[string]string{
	"name":       "name",
	"email":      "email",
	"role":       "role",
	"created_at": "created_at",
	"last_login": "last_login",
}

// List supports tenant/role/active/search filters. Non-super-admin
// callers are pinned to their own tenant regardless of the filter.
func (h *UserHandler) List(c *gin.Context) {
	p := parsePageParams(c, 10, "name", "asc")

	q := h.db.Model(&models.User{})

	if middleware.Role(c) == roles.SuperAdmin {
		if tenant := c.Query("tenant_id"); tenant != "" {
			q = q.Where("tenant_id = ?", tenant)
		}
	} else {
		tenant, ok := middleware.TenantID(c)
		if !ok {
			httperr.Forbidden(c, httperr.CodeAccessDenied, "access denied")
			return
		}
		q = q.Where("tenant_id = ?", tenant)
	}

	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}
	if active := c.Query("is_active"); active != "" {
		q = q.Where("is_active = ?", active == "true")
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ? OR email ILIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, httperr.CodePersistence, "failed to list users")
		return
	}

	column, ok := userSortColumns[p.SortBy]
	if !ok {
		column = "name"
	}

	var users []models.User
	if err := q.
		Order(column + " " + p.Order).
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&users).Error; err != nil {
		httperr.Internal(c, httperr.CodePersistence, "failed to list users")
		return
	}

	httpresp.List(c, users, total, p.Page, p.Limit)
}

func (h *UserHandler) Get(c *gin.Context) {
	user, ok := h.find(c)
	if !ok {
		return
	}
	httpresp.OK(c, user)
}

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Avatar   *string `json:"avatar"`
	IsActive *bool   `json:"is_active"`
}

func (h *UserHandler) Update(c *gin.Context) {
	user, ok := h.find(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "invalid request payload")
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := h.db.Save(user).Error; err != nil {
		httperr.Internal(c, httperr.CodePersistence, "failed to update user")
		return
	}

	httpresp.OK(c, user)
}

// Deactivate is the soft delete: the row stays for history, the
// session validator evicts any live sessions on next use.
func (h *UserHandler) Deactivate(c *gin.Context) {
	user, ok := h.find(c)
	if !ok {
		return
	}

	user.IsActive = false
	if err := h.db.Save(user).Error; err != nil {
		httperr.Internal(c, httperr.CodePersistence, "failed to deactivate user")
		return
	}

	httpresp.OK(c, gin.H{"message": "user deactivated"})
}

type userStats struct {
	Total    int64            `json:"total"`
	Active   int64            `json:"active"`
	Inactive int64            `json:"inactive"`
	ByRole   map[string]int64 `json:"by_role"`
}

func (h *UserHandler) Stats(c *gin.Context) {
	q := h.db.Model(&models.User{})
	if middleware.Role(c) != roles.SuperAdmin {
		tenant, ok := middleware.TenantID(c)
		if !ok {
			httperr.Forbidden(c, httperr.CodeAccessDenied, "access denied")
			return
		}
		q = q.Where("tenant_id = ?", tenant)
	}

	var stats userStats
	stats.ByRole = map[string]int64{}

	if err := q.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
		httperr.Internal(c, httperr.CodePersistence, "failed to compute stats")
		return
	}
	q.Session(&gorm.Session{}).Where("is_active = ?", true).Count(&stats.Active)
	stats.Inactive = stats.Total - stats.Active

	var rows []struct {
		Role  string
		Count int64
	}
	if err := q.Session(&gorm.Session{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Scan(&rows).Error; err != nil {
		httperr.Internal(c, httperr.CodePersistence, "failed to compute stats")
		return
	}
	for _, r := range rows {
		stats.ByRole[r.Role] = r.Count
	}

	httpresp.OK(c, stats)
}

// find loads the target user and enforces tenant visibility.
func (h *UserHandler) find(c *gin.Context) (*models.User, bool) {
	var user models.User
	if err := h.db.Where("id = ?", c.Param("id")).First(&user).Error; err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "user not found")
		return nil, false
	}

	if middleware.Role(c) != roles.SuperAdmin {
		tenant, ok := middleware.TenantID(c)
		if !ok || user.TenantID == nil || *user.TenantID != tenant {
			httperr.NotFound(c, httperr.CodeNotFound, "user not found")
			return nil, false
		}
	}

	return &user, true
}
