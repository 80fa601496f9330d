package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dental-lab/internal/auth"
	"github.com/BruksfildServices01/dental-lab/internal/content"
	domainAdmin "github.com/BruksfildServices01/dental-lab/internal/domain/admin"
	"github.com/BruksfildServices01/dental-lab/internal/export"
	"github.com/BruksfildServices01/dental-lab/internal/handlers"
	"github.com/BruksfildServices01/dental-lab/internal/middleware"
	ucAdmin "github.com/BruksfildServices01/dental-lab/internal/usecase/admin"
	ucAppointment "github.com/BruksfildServices01/dental-lab/internal/usecase/appointment"
	ucContact "github.com/BruksfildServices01/dental-lab/internal/usecase/contact"
	"github.com/BruksfildServices01/dental-lab/internal/usecase/dashboard"
)

// Deps is everything the HTTP surface needs, built once by the caller.
type Deps struct {
	Log         *slog.Logger
	DB          handlers.Pinger
	CORSOrigins []string
	RateLimiter *middleware.RateLimiter

	Tokens *auth.Tokens
	Admins *ucAdmin.Service

	Availability      *ucAppointment.GetAvailability
	CreateAppointment *ucAppointment.CreateAppointment
	ListAppointments  *ucAppointment.ListAppointments
	GetAppointment    *ucAppointment.GetAppointment
	UpdateAppointment *ucAppointment.UpdateAppointment
	UpdateStatus      *ucAppointment.UpdateStatus
	DeleteAppointment *ucAppointment.DeleteAppointment
	AppointmentStats  *ucAppointment.GetStats

	Contacts  *ucContact.Service
	Summary   *dashboard.GetSummary
	Exports   *export.Service
	AuditLogs handlers.AuditLister

	Site       *content.Site
	Thumbnails *content.Thumbnails
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.CORSMiddleware(d.CORSOrigins))

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(d.Availability, d.CreateAppointment, d.Contacts)
	contentHandler := handlers.NewContentHandler(d.Site, d.Thumbnails)
	authHandler := handlers.NewAuthHandler(d.Admins)
	meHandler := handlers.NewMeHandler()
	dashboardHandler := handlers.NewDashboardHandler(d.Summary, d.AppointmentStats)

	appointmentHandler := handlers.NewAppointmentHandler(
		d.CreateAppointment,
		d.ListAppointments,
		d.GetAppointment,
		d.UpdateAppointment,
		d.UpdateStatus,
		d.DeleteAppointment,
	)

	contactHandler := handlers.NewContactHandler(d.Contacts)
	userHandler := handlers.NewUserHandler(d.Admins)
	exportHandler := handlers.NewExportHandler(d.Exports)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogs)

	var limited gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if d.RateLimiter != nil {
		limited = d.RateLimiter.Middleware()
	}
	perm := middleware.RequirePermission

	r.GET("/health", handlers.Health(d.DB))

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/availability", publicHandler.Availability)
			publicAPI.POST("/appointments", limited, publicHandler.CreateAppointment)
			publicAPI.POST("/contacts", limited, publicHandler.CreateContact)

			publicAPI.GET("/content", contentHandler.Site)
			publicAPI.GET("/content/services", contentHandler.Services)
			publicAPI.GET("/content/gallery", contentHandler.Gallery)
			publicAPI.GET("/content/testimonials", contentHandler.Testimonials)
			publicAPI.GET("/content/team", contentHandler.Team)
			publicAPI.GET("/gallery/:id/image", contentHandler.GalleryImage)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/login", limited, authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/admin")
		secured.Use(middleware.RequireAdmin(d.Tokens, d.Admins))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/dashboard", perm(domainAdmin.PermDashboard), dashboardHandler.Summary)
			secured.GET("/dashboard/appointments", perm(domainAdmin.PermDashboard), dashboardHandler.AppointmentStats)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			appointments := secured.Group("/appointments", perm(domainAdmin.PermAppointments))
			{
				appointments.GET("", appointmentHandler.List)
				appointments.POST("", appointmentHandler.Create)
				appointments.GET("/slot", appointmentHandler.SlotTaken)
				appointments.GET("/:id", appointmentHandler.Get)
				appointments.PATCH("/:id", appointmentHandler.Update)
				appointments.PATCH("/:id/status", appointmentHandler.UpdateStatus)
				appointments.DELETE("/:id", appointmentHandler.Delete)
			}

			// ------------------------------
			// CONTACTS
			// ------------------------------
			contacts := secured.Group("/contacts", perm(domainAdmin.PermContacts))
			{
				contacts.GET("", contactHandler.List)
				contacts.GET("/:id", contactHandler.Get)
				contacts.PATCH("/:id", contactHandler.Update)
				contacts.DELETE("/:id", contactHandler.Delete)
			}

			// ------------------------------
			// USERS
			// ------------------------------
			users := secured.Group("/users", perm(domainAdmin.PermUsers))
			{
				users.GET("", userHandler.List)
				users.GET("/:subject", userHandler.Get)
				users.POST("", perm(domainAdmin.PermCreateUsers), userHandler.Create)
				users.PATCH("/:subject", userHandler.Update)
				users.DELETE("/:subject", perm(domainAdmin.PermDeleteUsers), userHandler.Delete)
			}

			// ------------------------------
			// EXPORTS
			// ------------------------------
			exports := secured.Group("/exports", perm(domainAdmin.PermExportData))
			{
				exports.GET("/spreadsheet", exportHandler.Spreadsheet)
				exports.GET("/:file", exportHandler.CSV)
				exports.POST("", exportHandler.Upload)
			}

			secured.GET("/audit-logs", perm(domainAdmin.PermReports), auditLogsHandler.List)
		}
	}
}
