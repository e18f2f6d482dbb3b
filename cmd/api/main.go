package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-platform/internal/audit"
	"github.com/BruksfildServices01/barber-platform/internal/auth"
	"github.com/BruksfildServices01/barber-platform/internal/billing"
	"github.com/BruksfildServices01/barber-platform/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-platform/internal/db"
	"github.com/BruksfildServices01/barber-platform/internal/httperr"
	"github.com/BruksfildServices01/barber-platform/internal/infra/repository"
	"github.com/BruksfildServices01/barber-platform/internal/logging"
	"github.com/BruksfildServices01/barber-platform/internal/media"
	"github.com/BruksfildServices01/barber-platform/internal/metrics"
	"github.com/BruksfildServices01/barber-platform/internal/routes"
	"github.com/BruksfildServices01/barber-platform/internal/session"
)

func main() {
	cfg := config.Load()

	log := logging.New(cfg.Env, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	db := dbpkg.NewDB(cfg)

	registry := buildRegistry(cfg, log)

	auditDispatcher := audit.NewDispatcher(audit.New(db), log)

	authSvc := auth.NewService(
		repository.NewUserGormRepository(db),
		registry,
		cfg.SessionTTL,
		log,
		auditDispatcher,
	)

	var billingSvc *billing.Service
	if cfg.MercadoPagoToken != "" {
		svc, err := billing.NewService(db, cfg.MercadoPagoToken, log)
		if err != nil {
			log.Fatal("failed to init billing", zap.Error(err))
		}
		billingSvc = svc
	} else {
		log.Warn("MERCADOPAGO_ACCESS_TOKEN unset, subscription endpoints disabled")
	}

	var uploader *media.AvatarUploader
	if cfg.S3Bucket != "" {
		up, err := media.NewAvatarUploader(
			context.Background(),
			cfg.S3Region,
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			cfg.S3Bucket,
			cfg.AvatarBaseURL,
		)
		if err != nil {
			log.Fatal("failed to init avatar storage", zap.Error(err))
		}
		uploader = up
	} else {
		log.Warn("S3_BUCKET unset, avatar uploads disabled")
	}

	startScheduler(cfg, log, registry, billingSvc)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(recovery(log))

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Log:      log,
		Registry: registry,
		Auth:     authSvc,
		Audit:    auditDispatcher,
		Billing:  billingSvc,
		Uploader: uploader,
	})

	log.Info("server starting", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func buildRegistry(cfg *config.Config, log *zap.Logger) session.Registry {
	if cfg.SessionBackend == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatal("redis unreachable", zap.Error(err))
		}
		log.Info("session registry: redis", zap.String("addr", cfg.RedisAddr))
		return session.NewRedisRegistry(client)
	}

	log.Info("session registry: in-memory", zap.Int("capacity", cfg.SessionCapacity))
	return session.NewMemoryRegistry(cfg.SessionCapacity)
}

// startScheduler runs the periodic housekeeping: expired-session
// sweeps, the session gauge, and subscription expiry.
func startScheduler(cfg *config.Config, log *zap.Logger, registry session.Registry, billingSvc *billing.Service) {
	c := cron.New()

	_, _ = c.AddFunc("@every 5m", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := registry.Sweep(ctx); err != nil {
			log.Warn("session sweep failed", zap.Error(err))
		}
		if mem, ok := registry.(*session.MemoryRegistry); ok {
			metrics.ActiveSessions.Set(float64(mem.Len()))
		}
	})

	if billingSvc != nil {
		_, _ = c.AddFunc("@daily", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()

			if err := billingSvc.ExpireOverdue(ctx); err != nil {
				log.Warn("subscription expiry pass failed", zap.Error(err))
			}
		})
	}

	c.Start()
}

// recovery turns panics into the standard 500 envelope.
func recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("path", c.Request.URL.Path),
				)
				httperr.Write(c, http.StatusInternalServerError, "internal_error", "internal server error")
				c.Abort()
			}
		}()
		c.Next()
	}
}
