package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"card-system/internal/controllers"
	"card-system/internal/services"
	"card-system/pkg/middleware"
)

func runCardRouter(api *echo.Group, cardService services.CardServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	cardCtrl := controllers.NewCardController(cardService, logger)

	cardGroup := api.Group("/cards", authMW.Auth)
	{
		cardGroup.GET("", cardCtrl.GetCards)
		cardGroup.GET("/:id", cardCtrl.GetCard)
	}
}
