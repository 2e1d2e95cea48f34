package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/resourcehub/internal/app/controllers"
	"github.com/yigit/resourcehub/internal/app/models/dto"
	"github.com/yigit/resourcehub/internal/middleware"
	"github.com/yigit/resourcehub/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	resourceController *controllers.ResourceController,
	eventHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
	maxUploadBytes int64,
) {
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "pong"}))
	})

	// API version group
	v1 := router.Group("/api/v1")

	v1.GET("/catalog", resourceController.GetCatalog)

	resources := v1.Group("/resource")
	{
		resources.GET("", resourceController.ListResources)
		if eventHandler != nil {
			resources.GET("/events", eventHandler.HandleConnection)
		}
		resources.GET("/:id", resourceController.GetResource)
	}

	// Writes require a token when JWT is configured
	protected := resources.Group("")
	protected.Use(authMiddleware.JWTAuth())
	{
		protected.POST("", middleware.LimitBody(maxUploadBytes), resourceController.CreateResource)
		protected.PUT("/:id", middleware.LimitBody(maxUploadBytes), resourceController.UpdateResource)
		protected.DELETE("/:id", resourceController.DeleteResource)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Route not found"),
		))
	})
}
