// Package app builds every client and component once and owns their
// shutdown.
package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/dental-lab/internal/audit"
	"github.com/BruksfildServices01/dental-lab/internal/auth"
	"github.com/BruksfildServices01/dental-lab/internal/config"
	"github.com/BruksfildServices01/dental-lab/internal/content"
	dbpkg "github.com/BruksfildServices01/dental-lab/internal/db"
	"github.com/BruksfildServices01/dental-lab/internal/export"
	"github.com/BruksfildServices01/dental-lab/internal/infra/events"
	infraRepo "github.com/BruksfildServices01/dental-lab/internal/infra/repository"
	"github.com/BruksfildServices01/dental-lab/internal/infra/slotlock"
	"github.com/BruksfildServices01/dental-lab/internal/infra/storage"
	"github.com/BruksfildServices01/dental-lab/internal/middleware"
	"github.com/BruksfildServices01/dental-lab/internal/notify"
	"github.com/BruksfildServices01/dental-lab/internal/routes"
	"github.com/BruksfildServices01/dental-lab/internal/timezone"
	ucAdmin "github.com/BruksfildServices01/dental-lab/internal/usecase/admin"
	ucAppointment "github.com/BruksfildServices01/dental-lab/internal/usecase/appointment"
	ucContact "github.com/BruksfildServices01/dental-lab/internal/usecase/contact"
	"github.com/BruksfildServices01/dental-lab/internal/usecase/dashboard"
)

const dialTimeout = 5 * time.Second

type App struct {
	Config *config.Config
	Log    *slog.Logger
	Now    func() time.Time

	DB      *gorm.DB
	Redis   *redis.Client
	Events  events.Publisher
	Storage *storage.S3

	Audit  *audit.Dispatcher
	Notify *notify.Dispatcher
	Tokens *auth.Tokens
	Admins *ucAdmin.Service
	Export *export.Service

	deps routes.Deps
}

type Option func(*App)

// WithClock replaces the wall clock, used by tests.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.Now = now }
}

func New(ctx context.Context, cfg *config.Config, log *slog.Logger, opts ...Option) (*App, error) {
	a := &App{
		Config: cfg,
		Log:    log,
		Now:    timezone.Clock(cfg.App.Timezone),
	}
	for _, opt := range opts {
		opt(a)
	}

	// ======================================================
	// 🔧 INFRA
	// ======================================================
	db, err := dbpkg.Open(cfg.DB.Driver, cfg.DB.URL, log)
	if err != nil {
		return nil, err
	}
	a.DB = db

	if cfg.DB.AutoMigrate {
		if err := dbpkg.Migrate(db); err != nil {
			a.Close()
			return nil, err
		}
	}

	var locker slotlock.Locker = slotlock.Nop{}
	if cfg.Redis.URL != "" {
		dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
		client, err := slotlock.Dial(dialCtx, cfg.Redis.URL)
		cancel()
		if err != nil {
			// bookings stay safe through the unique index
			log.Warn("slotlock.redis.unavailable", "err", err)
		} else {
			a.Redis = client
			locker = slotlock.NewRedis(client, cfg.Redis.LockTTL, log)
		}
	}

	publisher, err := events.New(events.Config{
		KafkaBrokers:   cfg.Broker.KafkaBrokers,
		KafkaTopic:     cfg.Broker.KafkaTopic,
		RabbitURL:      cfg.Broker.RabbitURL,
		RabbitExchange: cfg.Broker.RabbitExchange,
	}, log.With("module", "events"))
	if err != nil {
		log.Warn("events.fallback.nop", "err", err)
		publisher = events.Nop{}
	}
	a.Events = publisher

	if cfg.S3Enabled() {
		a.Storage = storage.NewS3(storage.Options{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
		})
	}

	var sender notify.Sender = notify.NewLogSender(log.With("module", "notify"))
	if cfg.MailEnabled() {
		sender = notify.NewResendSender(cfg.Mail.APIKey)
	}
	a.Notify = notify.NewDispatcher(sender, cfg.Mail.From, cfg.Mail.AdminEmail, log)

	// ======================================================
	// 🗄️ REPOSITORIES
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db, log)
	contactRepo := infraRepo.NewContactGormRepository(db, log)
	adminRepo := infraRepo.NewAdminGormRepository(db, log)
	auditRepo := infraRepo.NewAuditGormRepository(db, log)

	a.Audit = audit.NewDispatcher(audit.New(auditRepo, publisher, a.Now), log)

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	policy := ucAppointment.Policy{
		Lead:         time.Duration(cfg.Booking.LeadMinutes) * time.Minute,
		MaxDaysAhead: cfg.Booking.MaxDaysAhead,
		StoreTimeout: cfg.Booking.StoreTimeout,
		FailOpen:     cfg.Booking.FailOpen,
	}

	a.Tokens = auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL, a.Now)
	a.Admins = ucAdmin.NewService(adminRepo, a.Tokens, a.Audit, a.Now)

	contacts := ucContact.NewService(contactRepo, a.Notify, a.Audit, a.Now)

	var uploader export.Uploader
	if a.Storage != nil {
		uploader = a.Storage
	}
	a.Export = export.NewService(appointmentRepo, contactRepo, uploader, cfg.S3.ExportPrefix, a.Now)

	site, err := content.Load()
	if err != nil {
		a.Close()
		return nil, err
	}

	var thumbs *content.Thumbnails
	if a.Storage != nil {
		thumbs, err = content.NewThumbnails(site, a.Storage, cfg.S3.GalleryPrefix, cfg.Cache.ThumbnailSize, log)
		if err != nil {
			a.Close()
			return nil, err
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		a.Close()
		return nil, err
	}

	a.deps = routes.Deps{
		Log:         log,
		DB:          sqlDB,
		CORSOrigins: cfg.App.CORSOrigins,
		RateLimiter: middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),

		Tokens: a.Tokens,
		Admins: a.Admins,

		Availability:      ucAppointment.NewGetAvailability(appointmentRepo, policy, a.Now, log),
		CreateAppointment: ucAppointment.NewCreateAppointment(appointmentRepo, locker, a.Notify, a.Audit, policy, a.Now, log),
		ListAppointments:  ucAppointment.NewListAppointments(appointmentRepo),
		GetAppointment:    ucAppointment.NewGetAppointment(appointmentRepo),
		UpdateAppointment: ucAppointment.NewUpdateAppointment(appointmentRepo, a.Audit, policy, a.Now),
		UpdateStatus:      ucAppointment.NewUpdateStatus(appointmentRepo, a.Audit, a.Now),
		DeleteAppointment: ucAppointment.NewDeleteAppointment(appointmentRepo, a.Audit),
		AppointmentStats:  ucAppointment.NewGetStats(appointmentRepo, a.Now),

		Contacts:  contacts,
		Summary:   dashboard.NewGetSummary(appointmentRepo, contactRepo, a.Now),
		Exports:   a.Export,
		AuditLogs: auditRepo,

		Site:       site,
		Thumbnails: thumbs,
	}

	return a, nil
}

// Router builds the gin engine with every route registered.
func (a *App) Router() *gin.Engine {
	if !a.Config.IsLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, a.deps)
	return r
}

// Close waits for pending notifications, drains the audit queue and then
// closes every client in reverse order of creation.
func (a *App) Close() error {
	if a.Notify != nil {
		a.Notify.Close()
	}
	a.Audit.Close()

	var errs []error
	if a.Events != nil {
		errs = append(errs, a.Events.Close())
	}
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.DB != nil {
		errs = append(errs, dbpkg.Close(a.DB))
	}
	return errors.Join(errs...)
}
