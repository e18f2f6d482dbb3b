package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-platform/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-platform/internal/dto"
	"github.com/BruksfildServices01/barber-platform/internal/httperr"
	"github.com/BruksfildServices01/barber-platform/internal/httpresp"
	"github.com/BruksfildServices01/barber-platform/internal/middleware"
	"github.com/BruksfildServices01/barber-platform/internal/models"
	"github.com/BruksfildServices01/barber-platform/internal/roles"
	"github.com/BruksfildServices01/barber-platform/internal/timezone"
	usecase "github.com/BruksfildServices01/barber-platform/internal/usecase/appointment"
)

type AppointmentHandler struct {
	db       *gorm.DB
	create   *usecase.CreateAppointment
	update   *usecase.UpdateAppointment
	cancel   *usecase.CancelAppointment
	complete *usecase.CompleteAppointment
	list     *usecase.ListAppointments
	repo     domain.Repository
}

func NewAppointmentHandler(
	db *gorm.DB,
	create *usecase.CreateAppointment,
	update *usecase.UpdateAppointment,
	cancel *usecase.CancelAppointment,
	complete *usecase.CompleteAppointment,
	list *usecase.ListAppointments,
	repo domain.Repository,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:       db,
		create:   create,
		update:   update,
		cancel:   cancel,
		complete: complete,
		list:     list,
		repo:     repo,
	}
}

// --------- Requests ---------

type CreateAppointmentRequest struct {
	ClientID  string `json:"client_id" binding:"required"`
	BarberID  string `json:"barber_id" binding:"required"`
	ServiceID string `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	Notes     string `json:"notes"`
}

type UpdateAppointmentRequest struct {
	Date   *string `json:"date"`
	Time   *string `json:"time"`
	Notes  *string `json:"notes"`
	Status *string `json:"status"`
}

// --------- Handlers ---------

func (h *AppointmentHandler) List(c *gin.Context) {
	f := domain.Filters{
		TenantID:  c.Query("tenant_id"),
		BarberID:  c.Query("barber_id"),
		ClientID:  c.Query("client_id"),
		ServiceID: c.Query("service_id"),
		Status:    c.Query("status"),
		Date:      c.Query("date"),
		DateFrom:  c.Query("date_from"),
		DateTo:    c.Query("date_to"),
	}
	if !h.scope(c, &f) {
		return
	}

	p := parsePageParams(c, 20, "date", "desc")

	page, err := h.list.Execute(c.Request.Context(), f, domain.Page{
		Page:   p.Page,
		Limit:  p.Limit,
		SortBy: p.SortBy,
		Order:  p.Order,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, page)
}

// Today lists the caller's appointments for the current date in the
// barbershop's timezone.
func (h *AppointmentHandler) Today(c *gin.Context) {
	f := domain.Filters{}
	if !h.scope(c, &f) {
		return
	}
	f.Date = timezone.Today(h.tenantTimezone(c, f.TenantID))
	f.Status = string(domain.StatusScheduled)

	page, err := h.list.Execute(c.Request.Context(), f, domain.Page{
		Page: 1, Limit: 100, SortBy: "time", Order: "asc",
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, page)
}

// Upcoming lists scheduled appointments from today forward.
func (h *AppointmentHandler) Upcoming(c *gin.Context) {
	f := domain.Filters{}
	if !h.scope(c, &f) {
		return
	}
	f.DateFrom = timezone.Today(h.tenantTimezone(c, f.TenantID))
	f.Status = string(domain.StatusScheduled)

	p := parsePageParams(c, 20, "date", "asc")
	page, err := h.list.Execute(c.Request.Context(), f, domain.Page{
		Page: p.Page, Limit: p.Limit, SortBy: "date", Order: "asc",
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, page)
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	tenant, ok := middleware.TenantID(c)
	if !ok {
		httperr.Forbidden(c, httperr.CodeAccessDenied, "a barbershop scope is required to book")
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "invalid request payload")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), usecase.CreateAppointmentInput{
		TenantID:  tenant,
		ActorID:   middleware.UserID(c),
		ClientID:  req.ClientID,
		BarberID:  req.BarberID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Time:      req.Time,
		Notes:     req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, dto.NewAppointmentDetails(ap))
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	f := domain.Filters{}
	if !h.scope(c, &f) {
		return
	}

	ap, err := h.repo.GetAppointment(c.Request.Context(), c.Param("id"))
	if err != nil || !withinScope(ap, f) {
		httperr.NotFound(c, httperr.CodeNotFound, "appointment not found")
		return
	}

	httpresp.OK(c, dto.NewAppointmentDetails(ap))
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	tenant, ok := middleware.TenantID(c)
	if !ok {
		httperr.Forbidden(c, httperr.CodeAccessDenied, "access denied")
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "invalid request payload")
		return
	}

	ap, err := h.update.Execute(
		c.Request.Context(),
		tenant,
		middleware.UserID(c),
		c.Param("id"),
		usecase.UpdateAppointmentInput{
			Date:   req.Date,
			Time:   req.Time,
			Notes:  req.Notes,
			Status: req.Status,
		},
	)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentDetails(ap))
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	tenant, ok := middleware.TenantID(c)
	if !ok {
		httperr.Forbidden(c, httperr.CodeAccessDenied, "access denied")
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), tenant, middleware.UserID(c), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentDetails(ap))
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	tenant, ok := middleware.TenantID(c)
	if !ok {
		httperr.Forbidden(c, httperr.CodeAccessDenied, "access denied")
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), tenant, middleware.UserID(c), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentDetails(ap))
}

// --------- Scoping ---------

// scope narrows filters to what the caller may see, overriding any
// caller-supplied tenant/barber/client filter for non-super-admins.
func (h *AppointmentHandler) scope(c *gin.Context, f *domain.Filters) bool {
	role := middleware.Role(c)
	if role == roles.SuperAdmin {
		return true
	}

	tenant, ok := middleware.TenantID(c)
	if !ok {
		httperr.Forbidden(c, httperr.CodeAccessDenied, "access denied")
		return false
	}

	var barberID, clientID string
	switch role {
	case roles.Barber:
		var barber models.Barber
		if err := h.db.Where("user_id = ?", middleware.UserID(c)).First(&barber).Error; err != nil {
			httperr.Forbidden(c, httperr.CodeAccessDenied, "no barber profile for user")
			return false
		}
		barberID = barber.ID
	case roles.Client:
		var client models.Client
		if err := h.db.Where("user_id = ?", middleware.UserID(c)).First(&client).Error; err != nil {
			httperr.Forbidden(c, httperr.CodeAccessDenied, "no client profile for user")
			return false
		}
		clientID = client.ID
	}

	applyRoleScope(f, role, tenant, barberID, clientID)
	return true
}

// withinScope checks a loaded appointment against the caller's
// injected filters.
func withinScope(ap *models.Appointment, f domain.Filters) bool {
	if f.TenantID != "" && ap.TenantID != f.TenantID {
		return false
	}
	if f.BarberID != "" && ap.BarberID != f.BarberID {
		return false
	}
	if f.ClientID != "" && ap.ClientID != f.ClientID {
		return false
	}
	return true
}

// tenantTimezone resolves the shop timezone for date math; super
// admins without a tenant fall back to the platform default.
func (h *AppointmentHandler) tenantTimezone(c *gin.Context, tenantID string) string {
	if tenantID == "" {
		return timezone.DefaultTimezone
	}
	var shop models.Barbershop
	if err := h.db.Select("timezone").Where("id = ?", tenantID).First(&shop).Error; err != nil {
		return timezone.DefaultTimezone
	}
	return shop.Timezone
}
