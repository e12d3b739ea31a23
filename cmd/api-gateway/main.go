package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/fms-api/api/swagger"
	"github.com/noah-isme/fms-api/internal/handler"
	"github.com/noah-isme/fms-api/internal/middleware"
	"github.com/noah-isme/fms-api/internal/repository"
	"github.com/noah-isme/fms-api/internal/service"
	"github.com/noah-isme/fms-api/pkg/cache"
	"github.com/noah-isme/fms-api/pkg/config"
	"github.com/noah-isme/fms-api/pkg/database"
	"github.com/noah-isme/fms-api/pkg/export"
	"github.com/noah-isme/fms-api/pkg/jobs"
	"github.com/noah-isme/fms-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/fms-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/fms-api/pkg/middleware/requestid"
	"github.com/noah-isme/fms-api/pkg/storage"
)

// @title FMS API
// @version 1.0.0
// @description Facilities work-order management backend
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
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
		redisClient = nil
	}

	validate := validator.New()

	// Repositories.
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	workRequestRepo := repository.NewWorkRequestRepository(db)
	inspectionRepo := repository.NewInspectionRepository(db)
	actualWorkRepo := repository.NewActualWorkRepository(db)
	accomplishmentRepo := repository.NewAccomplishmentRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	lookupRepo := repository.NewLookupRepository(db)
	manpowerRepo := repository.NewManpowerRepository(db)
	reportJobRepo := repository.NewReportJobRepository(db)

	uploadStore, err := storage.NewLocalStorage(cfg.Uploads.StorageDir)
	if err != nil {
		logr.Fatal("failed to init upload storage", zap.Error(err))
	}
	exportStore, err := storage.NewLocalStorage(cfg.Reports.StorageDir)
	if err != nil {
		logr.Fatal("failed to init report storage", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Services.
	metricsSvc := service.NewMetricsService()

	apiLogSvc := service.NewAPILogService(auditRepo, jobs.QueueConfig{
		Workers:    cfg.APILog.Workers,
		BufferSize: cfg.APILog.BufferSize,
		MaxRetries: cfg.APILog.MaxRetries,
		RetryDelay: cfg.APILog.RetryDelay,
		Logger:     logr,
	}, logr)
	apiLogSvc.Start(ctx)
	defer apiLogSvc.Stop()

	authSvc := service.NewAuthService(userRepo, sessionRepo, auditRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		SessionIdleCutoff: cfg.Session.IdleTimeout,
		Issuer:            cfg.JWT.Issuer,
	})

	workRequestSvc := service.NewWorkRequestService(workRequestRepo, lookupRepo, uploadStore, auditRepo, validate, logr, service.UploadPolicy{
		MaxFileSizeBytes: cfg.Uploads.MaxFileSizeBytes,
		AllowedMIMEs:     cfg.Uploads.AllowedMIMEs,
	})
	inspectionSvc := service.NewInspectionService(inspectionRepo, validate, logr)
	actualWorkSvc := service.NewActualWorkService(actualWorkRepo, workRequestRepo, validate, logr)
	accomplishmentSvc := service.NewAccomplishmentService(accomplishmentRepo, workRequestRepo, validate, logr)
	feedbackSvc := service.NewFeedbackService(feedbackRepo, accomplishmentRepo, workRequestRepo, validate, logr)
	lookupSvc := service.NewLookupService(lookupRepo, validate, logr)
	userSvc := service.NewUserService(userRepo, auditRepo, validate, logr)
	manpowerSvc := service.NewManpowerService(manpowerRepo, validate, logr)
	auditSvc := service.NewAuditService(auditRepo, logr)

	var dashboardSvc *service.DashboardService
	if redisClient != nil {
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		dashboardSvc = service.NewDashboardService(workRequestRepo, feedbackRepo, cacheRepo, logr, cfg.Dashboard.CacheTTL)
	} else {
		dashboardSvc = service.NewDashboardService(workRequestRepo, feedbackRepo, nil, logr, cfg.Dashboard.CacheTTL)
	}
	var dashboardHandler *handler.DashboardHandler
	if cfg.Dashboard.Enabled {
		dashboardHandler = handler.NewDashboardHandler(dashboardSvc)
	}

	signer := storage.NewSignedURLSigner(cfg.Reports.SignedURLSecret, cfg.Reports.SignedURLTTL)
	exportSvc := service.NewExportService(workRequestRepo, accomplishmentRepo, feedbackRepo, exportStore, signer, service.ExportConfig{
		APIPrefix: cfg.APIPrefix,
		ResultTTL: cfg.Reports.SignedURLTTL,
	}, logr, export.NewCSVExporter(), export.NewPDFExporter())

	reportWorker := service.NewReportWorker(reportJobRepo, exportSvc, cfg.Reports.WorkerRetries, logr)
	reportQueue := jobs.NewQueue("reports", reportWorker.Handle, jobs.QueueConfig{
		Workers:    cfg.Reports.WorkerConcurrency,
		BufferSize: cfg.Reports.WorkerConcurrency * 4,
		MaxRetries: cfg.Reports.WorkerRetries,
		RetryDelay: time.Second,
		Logger:     logr,
	})
	reportSvc := service.NewReportService(reportJobRepo, reportQueue, exportSvc, logr, service.ReportServiceConfig{
		ResultTTL:       cfg.Reports.SignedURLTTL,
		CleanupInterval: cfg.Reports.CleanupInterval,
		MaxRetries:      cfg.Reports.WorkerRetries,
	})
	if cfg.Reports.Enabled {
		reportQueue.Start(ctx)
		defer reportQueue.Stop()
		reportSvc.RecoverPendingJobs(ctx)
		reportSvc.StartCleanup(ctx)
	}

	// HTTP wiring.
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.APILog(apiLogSvc, metricsSvc))

	router := &handler.Router{
		Auth:           handler.NewAuthHandler(authSvc),
		WorkRequests:   handler.NewWorkRequestHandler(workRequestSvc, dashboardSvc),
		Inspections:    handler.NewInspectionHandler(inspectionSvc),
		ActualWork:     handler.NewActualWorkHandler(actualWorkSvc),
		Accomplishment: handler.NewAccomplishmentHandler(accomplishmentSvc),
		Feedback:       handler.NewFeedbackHandler(feedbackSvc),
		Lookups:        handler.NewLookupHandler(lookupSvc),
		Users:          handler.NewUserHandler(userSvc),
		Manpower:       handler.NewManpowerHandler(manpowerSvc),
		Reports:        handler.NewReportHandler(reportSvc),
		Dashboard:      dashboardHandler,
		Audit:          handler.NewAuditHandler(auditSvc),
		Metrics:        handler.NewMetricsHandler(metricsSvc, db, redisClient),
		AuthService:    authSvc,
	}
	router.Register(r, cfg.APIPrefix)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
