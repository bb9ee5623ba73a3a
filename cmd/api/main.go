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

	_ "github.com/noah-isme/alumni-connect-api/api/swagger"
	"github.com/noah-isme/alumni-connect-api/internal/handler"
	"github.com/noah-isme/alumni-connect-api/internal/middleware"
	"github.com/noah-isme/alumni-connect-api/internal/repository"
	"github.com/noah-isme/alumni-connect-api/internal/service"
	"github.com/noah-isme/alumni-connect-api/pkg/cache"
	"github.com/noah-isme/alumni-connect-api/pkg/config"
	"github.com/noah-isme/alumni-connect-api/pkg/database"
	"github.com/noah-isme/alumni-connect-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/alumni-connect-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/alumni-connect-api/pkg/middleware/requestid"
)

// @title Alumni Connect API
// @version 1.0.0
// @description REST backend for the alumni network platform
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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
		logr.Sugar().Fatalw("database connection failed", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheRepo *repository.CacheRepository
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
			defer cacheRepo.Close()
		}
	}
	cacheSvc := service.NewCacheService(cacheRepoOrNil(cacheRepo), metricsSvc, cfg.Cache.DashboardTTL, logr, cfg.Cache.Enabled && cacheRepo != nil)

	auditSvc := service.NewAuditService(repository.NewAuditRepository(db), logr, service.AuditQueueConfig{
		Workers:    cfg.Audit.Workers,
		BufferSize: cfg.Audit.BufferSize,
		MaxRetries: cfg.Audit.MaxRetries,
	}, cfg.Audit.Enabled)
	auditSvc.Start(ctx)
	defer auditSvc.Stop()

	userRepo := repository.NewUserRepository(db)
	opportunityRepo := repository.NewOpportunityRepository(db)
	scholarshipRepo := repository.NewScholarshipRepository(db)
	mentorshipRepo := repository.NewMentorshipRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	storyRepo := repository.NewStoryRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	searchRepo := repository.NewSearchRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	authSvc := service.NewAuthService(userRepo, nil, logr, auditSvc, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      cfg.JWT.Issuer,
	})
	userSvc := service.NewUserService(userRepo, nil, logr, auditSvc)
	opportunitySvc := service.NewOpportunityService(opportunityRepo, nil, logr, auditSvc)
	scholarshipSvc := service.NewScholarshipService(scholarshipRepo, userRepo, nil, logr, auditSvc)
	mentorshipSvc := service.NewMentorshipService(mentorshipRepo, userRepo, nil, logr, auditSvc)
	messageSvc := service.NewMessageService(messageRepo, userRepo, nil, logr)
	storySvc := service.NewStoryService(storyRepo, nil, logr, auditSvc)
	applicationSvc := service.NewApplicationService(applicationRepo, opportunityRepo, scholarshipRepo, nil, logr, auditSvc)
	searchSvc := service.NewSearchService(searchRepo, cacheSvc, cfg.Cache.SearchTTL, metricsSvc, logr)
	adminSvc := service.NewAdminService(adminRepo, userRepo, opportunityRepo, scholarshipRepo, applicationRepo, cacheSvc, metricsSvc, cfg.Cache.DashboardTTL, nil, logr, auditSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, cfg.APIPrefix, handler.Handlers{
		Auth:          handler.NewAuthHandler(authSvc),
		Users:         handler.NewUserHandler(userSvc),
		Opportunities: handler.NewOpportunityHandler(opportunitySvc),
		Scholarships:  handler.NewScholarshipHandler(scholarshipSvc),
		Mentorship:    handler.NewMentorshipHandler(mentorshipSvc),
		Messages:      handler.NewMessageHandler(messageSvc),
		Stories:       handler.NewStoryHandler(storySvc),
		Applications:  handler.NewApplicationHandler(applicationSvc),
		Search:        handler.NewSearchHandler(searchSvc),
		Admin:         handler.NewAdminHandler(adminSvc),

		AuthService:    authSvc,
		AuditService:   auditSvc,
		Metrics:        metricsSvc,
		ExportsEnabled: cfg.Exports.Enabled,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}

// cacheRepoOrNil keeps the CacheRepository interface nil when the concrete
// pointer is nil, so the cache service's Enabled check stays truthful.
func cacheRepoOrNil(repo *repository.CacheRepository) service.CacheRepository {
	if repo == nil {
		return nil
	}
	return repo
}
