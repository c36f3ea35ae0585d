package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/DesignCorporation/Beauty-sub004/api/swagger"
	"github.com/DesignCorporation/Beauty-sub004/internal/handler"
	"github.com/DesignCorporation/Beauty-sub004/internal/middleware"
	"github.com/DesignCorporation/Beauty-sub004/internal/repository"
	"github.com/DesignCorporation/Beauty-sub004/internal/service"
	"github.com/DesignCorporation/Beauty-sub004/pkg/cache"
	"github.com/DesignCorporation/Beauty-sub004/pkg/config"
	"github.com/DesignCorporation/Beauty-sub004/pkg/database"
	"github.com/DesignCorporation/Beauty-sub004/pkg/jobs"
	"github.com/DesignCorporation/Beauty-sub004/pkg/logger"
	corsmiddleware "github.com/DesignCorporation/Beauty-sub004/pkg/middleware/cors"
	reqidmiddleware "github.com/DesignCorporation/Beauty-sub004/pkg/middleware/requestid"
	"github.com/DesignCorporation/Beauty-sub004/pkg/timezone"
)

// @title Beauty Availability API
// @version 1.0.0
// @description Slot availability and schedule maintenance for salon bookings
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, snapshot cache disabled", "error", err)
		redisClient = nil
	}

	normalizer, err := timezone.NewNormalizer(cfg.Availability.DefaultTimezone)
	if err != nil {
		logr.Sugar().Fatalw("invalid default timezone", "zone", cfg.Availability.DefaultTimezone, "error", err)
	}

	salonRepo := repository.NewSalonRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	workingHoursRepo := repository.NewWorkingHoursRepository(db)
	staffScheduleRepo := repository.NewStaffScheduleRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	cacheRepo := repository.NewAvailabilityCacheRepository(redisClient, cfg.Availability.CacheTTL)

	invalidationQueue := jobs.NewQueue("availability-invalidation", func(jobCtx context.Context, job jobs.Job) error {
		tenantID, ok := job.Payload.(string)
		if !ok {
			return fmt.Errorf("unexpected payload type %T", job.Payload)
		}
		removed, err := cacheRepo.InvalidateTenant(jobCtx, tenantID)
		if err != nil {
			return err
		}
		logr.Debug("invalidated availability snapshots",
			zap.String("tenant_id", tenantID),
			zap.Int("removed", removed))
		return nil
	}, jobs.QueueConfig{
		Workers:    cfg.Jobs.Workers,
		BufferSize: cfg.Jobs.BufferSize,
		MaxRetries: cfg.Jobs.MaxRetries,
		RetryDelay: cfg.Jobs.RetryDelay,
		Logger:     logr,
	})
	invalidationQueue.Start(ctx)
	defer invalidationQueue.Stop()

	calendarSvc := service.NewSalonCalendarService(workingHoursRepo, logr)
	resolverSvc := service.NewStaffScheduleResolver(staffScheduleRepo, logr)
	generator := service.NewSlotGenerator(calendarSvc, resolverSvc, appointmentRepo, staffRepo, normalizer, cfg.Availability.PastGraceMinutes, logr)
	availabilitySvc := service.NewAvailabilityService(salonRepo, staffRepo, generator, calendarSvc, cacheRepo, normalizer, nil, logr)
	exportSvc := service.NewExportService(availabilitySvc, logr)
	adminSvc := service.NewScheduleAdminService(workingHoursRepo, staffScheduleRepo, staffRepo, invalidationQueue, nil, logr)
	metricsSvc := service.NewMetricsService()

	availabilityHandler := handler.NewAvailabilityHandler(availabilitySvc, exportSvc, metricsSvc)
	adminHandler := handler.NewScheduleAdminHandler(adminSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "postgres": err.Error()})
			return
		}
		if redisClient != nil {
			if err := redisClient.Ping(pingCtx).Err(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "redis": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.Tenant(cfg.JWT.Secret))
	api.Use(middleware.WithResponseMeta())
	{
		api.GET("/availability", availabilityHandler.Get)
		api.GET("/availability/export", availabilityHandler.Export)

		api.GET("/schedule/working-hours", adminHandler.ListWorkingHours)
		api.PUT("/schedule/working-hours", adminHandler.ReplaceWorkingHours)
		api.GET("/schedule/staff/:id/rules", adminHandler.GetStaffSchedule)
		api.PUT("/schedule/staff/:id/rules", adminHandler.ReplaceStaffRules)
		api.GET("/schedule/staff/:id/exceptions", adminHandler.ListExceptions)
		api.POST("/schedule/staff/:id/exceptions", adminHandler.CreateException)
		api.DELETE("/schedule/staff/:id/exceptions/:exceptionId", adminHandler.DeleteException)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
