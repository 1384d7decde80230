package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/vitalize/club-api/api/swagger"
	"github.com/vitalize/club-api/internal/handler"
	"github.com/vitalize/club-api/internal/middleware"
	"github.com/vitalize/club-api/internal/repository"
	"github.com/vitalize/club-api/internal/service"
	"github.com/vitalize/club-api/pkg/cache"
	"github.com/vitalize/club-api/pkg/config"
	"github.com/vitalize/club-api/pkg/database"
	"github.com/vitalize/club-api/pkg/logger"
	corsmiddleware "github.com/vitalize/club-api/pkg/middleware/cors"
	reqidmiddleware "github.com/vitalize/club-api/pkg/middleware/requestid"
)

// @title Vitalize Gymnastics Club API
// @version 1.0.0
// @description Training programs, enrolments, attendance and progress tracking
// @BasePath /api/v1
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	// Redis is optional: a failed connection disables caching but not the API.
	var cacheRepo service.CacheRepository
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, caching disabled", zap.Error(err))
	} else {
		defer redisClient.Close() //nolint:errcheck
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, cacheRepo != nil)

	programRepo := repository.NewProgramRepository(db)
	enrolmentRepo := repository.NewEnrolmentRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	userRepo := repository.NewUserRepository(db)

	programSvc := service.NewProgramService(programRepo, enrolmentRepo, logr)
	enrolmentSvc := service.NewEnrolmentService(enrolmentRepo, programRepo, attendanceRepo, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, enrolmentRepo, logr)
	progressSvc := service.NewProgressService(progressRepo, enrolmentRepo, logr)
	authSvc := service.NewAuthService(userRepo, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	dashboardSvc := service.NewDashboardService(programRepo, enrolmentRepo, attendanceRepo, progressRepo, cacheSvc, logr)
	exportSvc := service.NewExportService(programRepo, enrolmentRepo, progressRepo, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	programHandler := handler.NewProgramHandler(programSvc, dashboardSvc)
	enrolmentHandler := handler.NewEnrolmentHandler(enrolmentSvc, dashboardSvc)
	attendanceHandler := handler.NewAttendanceHandler(attendanceSvc, dashboardSvc)
	progressHandler := handler.NewProgressHandler(progressSvc, dashboardSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)

	protected := api.Group("")
	protected.Use(middleware.JWT(authSvc))

	protected.GET("/programs", programHandler.List)
	protected.POST("/programs", programHandler.Create)
	protected.GET("/programs/:id", programHandler.Get)
	protected.PUT("/programs/:id", programHandler.Update)
	protected.DELETE("/programs/:id", programHandler.Delete)

	protected.GET("/enrolments", enrolmentHandler.List)
	protected.POST("/enrolments", enrolmentHandler.Create)
	protected.DELETE("/enrolments/:id", enrolmentHandler.Delete)
	protected.GET("/enrolments/:id/progress", enrolmentHandler.Progress)
	protected.GET("/enrolments/:id/attendance", attendanceHandler.History)
	protected.GET("/enrolments/:id/progress-records", progressHandler.History)

	protected.POST("/attendance", attendanceHandler.Mark)

	protected.GET("/progress", progressHandler.List)
	protected.POST("/progress", progressHandler.Record)

	if cfg.Dashboard.Enabled {
		protected.GET("/dashboard/stats", dashboardHandler.Stats)
	}
	if cfg.Exports.Enabled {
		protected.GET("/programs/:id/roster/export", exportHandler.Roster)
		protected.GET("/progress/export", exportHandler.ProgressReport)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
