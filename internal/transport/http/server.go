package http

import (
	"github.com/gin-gonic/gin"

	appsvc "resource-library/internal/app"
	"resource-library/internal/bootstrap"
	"resource-library/internal/repository"
	"resource-library/internal/transport/http/handler"
	"resource-library/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.CORS())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	resourceRepo := repository.NewResourceRepository(app.DB)
	var publisher appsvc.EventPublisher
	if app.Events != nil {
		publisher = app.Events
	}
	resourceService := appsvc.NewResourceService(
		resourceRepo,
		app.Embedder,
		app.Transcripts,
		publisher,
		app.Config.Storage.UploadDir,
	)
	resourceHandler := handler.NewResourceHandler(resourceService)
	activityHandler := handler.NewActivityHandler(
		appsvc.NewActivityService(repository.NewEventRepository(app.DB)),
	)

	api := router.Group("/api")
	api.POST("/upload", resourceHandler.Upload)
	api.GET("/resources", resourceHandler.List)
	api.GET("/resources/:id", resourceHandler.Get)
	api.PUT("/resources/:id", resourceHandler.Update)
	api.DELETE("/resources/:id", resourceHandler.Delete)
	api.GET("/events", activityHandler.List)

	return router
}
