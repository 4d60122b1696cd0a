package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/sekolahku/siswa-admin-api/api/swagger"
	"github.com/sekolahku/siswa-admin-api/internal/handler"
	"github.com/sekolahku/siswa-admin-api/internal/middleware"
	"github.com/sekolahku/siswa-admin-api/internal/models"
	"github.com/sekolahku/siswa-admin-api/internal/repository"
	"github.com/sekolahku/siswa-admin-api/internal/service"
	"github.com/sekolahku/siswa-admin-api/pkg/cache"
	"github.com/sekolahku/siswa-admin-api/pkg/config"
	"github.com/sekolahku/siswa-admin-api/pkg/database"
	"github.com/sekolahku/siswa-admin-api/pkg/logger"
	corsmiddleware "github.com/sekolahku/siswa-admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/sekolahku/siswa-admin-api/pkg/middleware/requestid"
	"github.com/sekolahku/siswa-admin-api/pkg/storage"
)

// @title Siswa Admin API
// @version 1.0.0
// @description Backend for the student records administration portal
// @BasePath /api
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close()

	metrics := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Dashboard.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, dashboards uncached", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metrics, cfg.Dashboard.CacheTTL, logr, true)
		}
	}

	studentRepo := repository.NewStudentRepository(db)
	userRepo := repository.NewUserRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	authSvc := service.NewAuthService(userRepo, nil, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "siswa-admin-api",
	})
	studentSvc := service.NewStudentService(studentRepo, cacheSvc, userRepo, nil, logr)
	importSvc := service.NewImportService(studentRepo, cacheSvc, userRepo, cfg.Imports.MaxRows, logr)
	exportSvc := service.NewExportService(studentRepo, settingsRepo, logr)
	dashboardSvc := service.NewDashboardService(studentRepo, cacheSvc, cfg.Dashboard.CacheTTL, logr)
	settingsSvc := service.NewSettingsService(settingsRepo, userRepo, nil, logr)

	var archiver handler.UploadArchiver
	if uploadArchive, err := storage.NewUploadArchive(cfg.Imports.UploadDir); err != nil {
		logr.Warn("upload archive unavailable, imported files will not be retained", zap.Error(err))
	} else {
		archiver = uploadArchive
		if removed, err := uploadArchive.CleanupOlderThan(cfg.Imports.Retention); err != nil {
			logr.Warn("upload archive cleanup failed", zap.Error(err))
		} else if len(removed) > 0 {
			logr.Info("expired uploads removed", zap.Int("count", len(removed)))
		}
	}

	authHandler := handler.NewAuthHandler(authSvc)
	studentHandler := handler.NewStudentHandler(studentSvc, importSvc, exportSvc, archiver, cfg.Imports.MaxFileSizeBytes, logr)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	settingsHandler := handler.NewSettingsHandler(settingsSvc)
	metricsHandler := handler.NewMetricsHandler(metrics)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)

			protected := auth.Group("")
			protected.Use(middleware.JWT(authSvc))
			protected.POST("/logout", authHandler.Logout)
			protected.POST("/change-password", authHandler.ChangePassword)
			protected.GET("/me", authHandler.Me)
		}

		secured := api.Group("")
		secured.Use(middleware.JWT(authSvc))
		{
			students := secured.Group("/students")
			{
				students.GET("", studentHandler.List)
				students.POST("", studentHandler.Create)
				students.GET("/export", studentHandler.Export)
				students.POST("/import", studentHandler.Import)
				students.GET("/import/template", studentHandler.ImportTemplate)
				students.POST("/bulk/status", studentHandler.BulkStatus)
				students.POST("/bulk/delete", middleware.RequireRoles(models.RoleAdmin), studentHandler.BulkDelete)
				students.GET("/:id", studentHandler.Get)
				students.PUT("/:id", studentHandler.Update)
				students.PATCH("/:id/status", studentHandler.UpdateStatus)
				students.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), studentHandler.Delete)
				students.GET("/:id/profile", studentHandler.ProfilePDF)
			}

			settings := secured.Group("/settings")
			{
				settings.GET("/print", settingsHandler.Get)
				settings.PUT("/print", middleware.RequireRoles(models.RoleAdmin), settingsHandler.Update)
			}

			dashboard := secured.Group("/dashboard")
			{
				dashboard.GET("/stats", dashboardHandler.Stats)
				dashboard.GET("/reports", dashboardHandler.Reports)
			}

			secured.GET("/system/metrics", metricsHandler.Snapshot)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
