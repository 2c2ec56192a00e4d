package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"card-system/internal/controllers"
	"card-system/internal/services"
	"card-system/pkg/middleware"
)

func runRequestRouter(api *echo.Group, requestService services.CardRequestServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	requestCtrl := controllers.NewCardRequestController(requestService, logger)

	requestGroup := api.Group("/requests", authMW.Auth)
	{
		requestGroup.GET("", requestCtrl.GetRequests)
		requestGroup.GET("/export", requestCtrl.ExportRequests)
		requestGroup.POST("", requestCtrl.CreateRequest)
		requestGroup.GET("/:id", requestCtrl.GetRequest)
		requestGroup.PUT("/:id", requestCtrl.UpdateRequest)
		requestGroup.POST("/:id/status", requestCtrl.ChangeStatus)
		requestGroup.GET("/:id/history", requestCtrl.GetHistory)
	}
}
