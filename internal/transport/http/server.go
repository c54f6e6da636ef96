package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "cofflyze-api/internal/app"
	"cofflyze-api/internal/bootstrap"
	"cofflyze-api/internal/cache"
	"cofflyze-api/internal/platform/rabbitmq"
	"cofflyze-api/internal/repository"
	"cofflyze-api/internal/transport/http/handler"
	"cofflyze-api/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	cfg := app.Config

	gin.SetMode(cfg.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.CORS())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	deps := appsvc.PredictDeps{
		Images:      app.Images,
		Classifier:  app.Classifier,
		Predictions: repository.NewPredictionRepository(app.MySQL),
	}
	if app.Redis != nil {
		deps.Cache = cache.NewPredictionCache(app.Redis, time.Duration(cfg.Redis.HistoryTTLSeconds)*time.Second)
	}
	if app.MQConn != nil {
		deps.Orphans = rabbitmq.NewOrphanPublisher(app.MQConn, cfg.RabbitMQ.OrphanQueue)
	}
	predictService := appsvc.NewPredictService(deps, appsvc.PredictOptions{
		ConfidenceThreshold: cfg.Predict.ConfidenceThreshold,
		Location:            app.Location,
		MaxUploadBytes:      cfg.MaxUploadBytes(),
		CleanupOrphans:      cfg.Storage.CleanupOrphans,
	})
	predictHandler := handler.NewPredictHandler(predictService, cfg.MaxUploadBytes())

	router.GET("/predict", predictHandler.List)
	router.POST("/predict", predictHandler.Create)

	return router
}
