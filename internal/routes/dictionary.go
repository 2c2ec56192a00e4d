package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"card-system/internal/controllers"
	"card-system/internal/services"
	"card-system/pkg/middleware"
)

func runDictionaryRouter(api *echo.Group, dictionaryService services.DictionaryServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	dictCtrl := controllers.NewDictionaryController(dictionaryService, logger)

	api.GET("/statuses", dictCtrl.GetStatuses, authMW.Auth)
	api.GET("/card-types", dictCtrl.GetCardTypes, authMW.Auth)
	api.GET("/branches", dictCtrl.GetBranches, authMW.Auth)
	api.GET("/organizations", dictCtrl.GetOrganizations, authMW.Auth)
	api.GET("/organizations/:id/users", dictCtrl.GetOrganizationUsers, authMW.Auth)
	api.GET("/users", dictCtrl.GetUsers, authMW.Auth)
}
