package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-platform/internal/audit"
	"github.com/BruksfildServices01/barber-platform/internal/auth"
	"github.com/BruksfildServices01/barber-platform/internal/billing"
	"github.com/BruksfildServices01/barber-platform/internal/handlers"
	"github.com/BruksfildServices01/barber-platform/internal/httperr"
	infraRepo "github.com/BruksfildServices01/barber-platform/internal/infra/repository"
	"github.com/BruksfildServices01/barber-platform/internal/media"
	"github.com/BruksfildServices01/barber-platform/internal/middleware"
	"github.com/BruksfildServices01/barber-platform/internal/roles"
	"github.com/BruksfildServices01/barber-platform/internal/session"
	ucAppointment "github.com/BruksfildServices01/barber-platform/internal/usecase/appointment"
)

// Deps carries the shared singletons built in main.
type Deps struct {
	DB       *gorm.DB
	Log      *zap.Logger
	Registry session.Registry
	Auth     *auth.Service
	Audit    *audit.Dispatcher
	Billing  *billing.Service
	Uploader *media.AvatarUploader
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.MetricsMiddleware())

	r.NoRoute(func(c *gin.Context) {
		httperr.NotFound(c, httperr.CodeNotFound, "route not found")
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		d.Audit,
		infraRepo.IsNotFound,
	)
	updateAppointmentUC := ucAppointment.NewUpdateAppointment(appointmentRepo, d.Audit)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(appointmentRepo, d.Audit)
	completeAppointmentUC := ucAppointment.NewCompleteAppointment(appointmentRepo, d.Audit)
	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, d.Auth)
	userHandler := handlers.NewUserHandler(d.DB)
	dashboardHandler := handlers.NewDashboardHandler(d.DB)
	clientHandler := handlers.NewClientHandler(d.DB)
	barberHandler := handlers.NewBarberHandler(d.DB)
	serviceHandler := handlers.NewServiceHandler(d.DB)
	barbershopHandler := handlers.NewBarbershopHandler(d.DB, d.Billing)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)
	avatarHandler := handlers.NewAvatarHandler(d.DB, d.Uploader)

	appointmentHandler := handlers.NewAppointmentHandler(
		d.DB,
		createAppointmentUC,
		updateAppointmentUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		listAppointmentsUC,
		appointmentRepo,
	)

	// ======================================================
	// PUBLIC
	// ======================================================
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)

	// ======================================================
	// PRIVATE
	// ======================================================
	secured := r.Group("/")
	secured.Use(middleware.AuthMiddleware(d.Auth, d.Registry))
	{
		secured.POST("/auth/logout", authHandler.Logout)
		secured.GET("/auth/me", authHandler.Me)

		// ------------------------------
		// USERS (permission-gated)
		// ------------------------------
		users := secured.Group("/users")
		users.Use(middleware.RequirePermission(roles.PermViewAllUsers))
		{
			users.GET("", userHandler.List)
			users.GET("/stats", userHandler.Stats)
			users.GET("/:id", userHandler.Get)
			users.PUT("/:id", userHandler.Update)
			users.DELETE("/:id", userHandler.Deactivate)
			users.POST("/:id/avatar", avatarHandler.UploadUserAvatar)
		}

		// ------------------------------
		// DASHBOARD
		// ------------------------------
		dashboard := secured.Group("/dashboard")
		dashboard.Use(middleware.RequirePermission(roles.PermViewDashboard))
		{
			dashboard.GET("/stats", dashboardHandler.Stats)
			dashboard.GET("/global", dashboardHandler.Global)
			dashboard.GET("/realtime", dashboardHandler.Realtime)
			dashboard.GET("/monthly", dashboardHandler.Monthly)
		}

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		appointments := secured.Group("/appointments")
		{
			appointments.GET("", appointmentHandler.List)
			appointments.POST("", appointmentHandler.Create)
			appointments.GET("/today", appointmentHandler.Today)
			appointments.GET("/upcoming", appointmentHandler.Upcoming)
			appointments.GET("/:id", appointmentHandler.Get)
			appointments.PUT("/:id", appointmentHandler.Update)
			appointments.DELETE("/:id", appointmentHandler.Cancel)
			appointments.PATCH("/:id/complete", appointmentHandler.Complete)
		}

		// ------------------------------
		// CLIENTS
		// ------------------------------
		clients := secured.Group("/clients")
		{
			clients.GET("", clientHandler.List)
			clients.POST("", middleware.RequirePermission(roles.PermManageClients), clientHandler.Create)
			clients.GET("/:id", clientHandler.Get)
			clients.PUT("/:id", middleware.RequirePermission(roles.PermManageClients), clientHandler.Update)
			clients.GET("/:id/stats", clientHandler.Stats)
		}

		// ------------------------------
		// BARBERS
		// ------------------------------
		barbers := secured.Group("/barbers")
		{
			barbers.GET("", barberHandler.List)
			barbers.POST("", middleware.RequirePermission(roles.PermManageBarbers), barberHandler.Create)
			barbers.GET("/:id", barberHandler.Get)
			barbers.PUT("/:id", middleware.RequirePermission(roles.PermManageBarbers), barberHandler.Update)
			barbers.GET("/:id/services", barberHandler.Services)
			barbers.GET("/:id/stats", barberHandler.Stats)
			barbers.POST("/:id/avatar", middleware.RequirePermission(roles.PermManageBarbers), avatarHandler.UploadBarberAvatar)
		}

		// ------------------------------
		// SERVICES
		// ------------------------------
		services := secured.Group("/services")
		{
			services.GET("", serviceHandler.List)
			services.GET("/categories", serviceHandler.Categories)
			services.POST("", middleware.RequirePermission(roles.PermManageServices), serviceHandler.Create)
			services.GET("/:id", serviceHandler.Get)
			services.PUT("/:id", middleware.RequirePermission(roles.PermManageServices), serviceHandler.Update)
			services.DELETE("/:id", middleware.RequirePermission(roles.PermManageServices), serviceHandler.Delete)
		}

		// ------------------------------
		// BARBERSHOPS
		// ------------------------------
		barbershops := secured.Group("/barbershops")
		{
			barbershops.GET("", middleware.RequirePermission(roles.PermViewAllBarbershops), barbershopHandler.List)
			barbershops.GET("/plans", barbershopHandler.Plans)
			barbershops.GET("/:id", barbershopHandler.Get)
			barbershops.PUT("/:id", barbershopHandler.Update)
			barbershops.GET("/:id/stats", barbershopHandler.Stats)

			subscription := barbershops.Group("/:id/subscription")
			subscription.Use(middleware.RequirePermission(roles.PermManageBilling))
			{
				subscription.GET("", barbershopHandler.Subscription)
				subscription.POST("", barbershopHandler.Subscribe)
				subscription.DELETE("", barbershopHandler.CancelSubscription)
			}
		}

		// ------------------------------
		// AUDIT LOGS
		// ------------------------------
		secured.GET("/audit-logs", middleware.RequirePermission(roles.PermViewAllUsers), auditLogsHandler.List)
	}
}
