package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/myclassroom/assessment-api/internal/handler"
	"github.com/myclassroom/assessment-api/internal/middleware"
	"github.com/myclassroom/assessment-api/internal/repository"
	"github.com/myclassroom/assessment-api/internal/service"
	"github.com/myclassroom/assessment-api/pkg/cache"
	"github.com/myclassroom/assessment-api/pkg/config"
	"github.com/myclassroom/assessment-api/pkg/database"
	"github.com/myclassroom/assessment-api/pkg/logger"
	corsmiddleware "github.com/myclassroom/assessment-api/pkg/middleware/cors"
	reqidmiddleware "github.com/myclassroom/assessment-api/pkg/middleware/requestid"
)

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
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			// The cache is an optimization; reads fall back to postgres.
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, true)
			defer cacheRepo.Close()
		}
	}

	validate := validator.New()

	teacherRepo := repository.NewTeacherRepository(db, metricsSvc)
	assessmentRepo := repository.NewAssessmentRepository(db, metricsSvc)

	teacherSvc := service.NewTeacherService(teacherRepo, assessmentRepo, cacheSvc, validate, logr)
	assessmentSvc := service.NewAssessmentService(assessmentRepo, teacherRepo, cacheSvc, validate, logr, cfg.Scoring.AllowZeroNotHeld)
	classSvc := service.NewClassService()

	var exportSvc *service.ExportService
	if cfg.Export.Enabled {
		exportSvc = service.NewExportService(assessmentRepo, logr)
	}

	systemHandler := handler.NewSystemHandler(classSvc, metricsSvc)
	teacherHandler := handler.NewTeacherHandler(teacherSvc)
	assessmentHandler := handler.NewAssessmentHandler(assessmentSvc, exportSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(handler.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	handler.Routes(r, cfg.APIPrefix, systemHandler, teacherHandler, assessmentHandler, cfg.Export.Enabled)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
