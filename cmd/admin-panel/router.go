package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/tutorbot-admin/api/swagger"
	"github.com/noah-isme/tutorbot-admin/internal/handler"
	internalmiddleware "github.com/noah-isme/tutorbot-admin/internal/middleware"
	"github.com/noah-isme/tutorbot-admin/internal/repository"
	"github.com/noah-isme/tutorbot-admin/internal/service"
	"github.com/noah-isme/tutorbot-admin/pkg/config"
	"github.com/noah-isme/tutorbot-admin/pkg/logger"
	corsmiddleware "github.com/noah-isme/tutorbot-admin/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/tutorbot-admin/pkg/middleware/requestid"
	"github.com/noah-isme/tutorbot-admin/web"
)

const authRealm = "Learning Assistant Admin"

func newRouter(cfg *config.Config, logr *zap.Logger, db *sqlx.DB) (*gin.Engine, error) {
	metrics := service.NewMetricsService()
	store := repository.NewTableStore(db,
		repository.WithQueryTimeout(cfg.Database.QueryTimeout),
		repository.WithQueryObserver(metrics),
	)

	agg := cfg.Aggregation
	pages := service.PageConfig{DefaultSize: agg.PageSize, MaxSize: agg.MaxPageSize}

	students := service.NewStudentService(service.StudentServiceParams{
		Store: store, Logger: logr, Metrics: metrics, Pages: pages, Concurrency: agg.LookupConcurrency,
	})
	topics := service.NewTopicService(service.TopicServiceParams{
		Store: store, Logger: logr, Metrics: metrics, Pages: pages, Concurrency: agg.LookupConcurrency,
	})
	sessions := service.NewSessionService(service.SessionServiceParams{
		Store: store, Logger: logr, Metrics: metrics, Pages: pages, Concurrency: agg.LookupConcurrency,
	})
	progress := service.NewProgressService(service.ProgressServiceParams{
		Store:       store,
		Logger:      logr,
		Metrics:     metrics,
		Config:      service.ProgressConfig{StudentLimit: agg.ProgressStudentLimit, RowLimit: agg.ProgressRowLimit},
		Concurrency: agg.LookupConcurrency,
	})
	dashboard := service.NewDashboardService(service.DashboardServiceParams{
		Store:       store,
		Logger:      logr,
		Metrics:     metrics,
		Config:      service.DashboardServiceConfig{RecentSessions: agg.RecentSessions},
		Concurrency: agg.LookupConcurrency,
	})
	exports := service.NewExportService(service.ExportServiceParams{
		Students: students,
		Progress: progress,
		Logger:   logr,
	})

	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.HTMLRender = renderer
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr, "/health", "/ready", "/metrics"))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metrics))
	r.Use(internalmiddleware.WithResponseMeta())
	r.StaticFS("/static", http.FS(web.Static()))

	metricsHandler := handler.NewMetricsHandler(metrics, store)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.EnableDocs && cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	admin := r.Group("/", internalmiddleware.BasicAuth(cfg.Admin, authRealm))

	pageHandler := handler.NewPageHandler(handler.PageHandlerParams{
		App:       cfg.App,
		Dashboard: dashboard,
		Progress:  progress,
		Students:  students,
		Topics:    topics,
		Sessions:  sessions,
	})
	admin.GET("/", pageHandler.Dashboard)
	admin.GET("/students", pageHandler.Students)
	admin.GET("/topics", pageHandler.Topics)
	admin.GET("/sessions", pageHandler.Sessions)
	admin.GET("/progress", pageHandler.Progress)

	api := admin.Group("/api")

	studentHandler := handler.NewStudentHandler(students)
	exportHandler := handler.NewExportHandler(exports)
	api.GET("/students", studentHandler.List)
	api.GET("/students/export", internalmiddleware.Audit(logr, "export.students"), exportHandler.Students)
	api.GET("/students/:id", studentHandler.Get)

	api.GET("/topics", handler.NewTopicHandler(topics).List)
	api.GET("/sessions", handler.NewSessionHandler(sessions).List)

	dashboardHandler := handler.NewDashboardHandler(dashboard, progress)
	api.GET("/progress", dashboardHandler.Progress)
	api.GET("/progress/export", internalmiddleware.Audit(logr, "export.progress"), exportHandler.Progress)
	api.GET("/statistics", dashboardHandler.Statistics)
	api.GET("/system/metrics", metricsHandler.System)

	return r, nil
}
