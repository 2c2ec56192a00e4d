package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"card-system/internal/controllers"
	"card-system/internal/services"
	"card-system/pkg/middleware"
)

func runEmployeeRouter(api *echo.Group, employeeService services.EmployeeServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	employeeCtrl := controllers.NewEmployeeController(employeeService, logger)

	employeeGroup := api.Group("/employees", authMW.Auth)
	{
		employeeGroup.GET("/profile", employeeCtrl.GetProfile)
		employeeGroup.POST("", employeeCtrl.CreateManager)
		employeeGroup.POST("/:id/activate", employeeCtrl.Activate)
		employeeGroup.POST("/:id/deactivate", employeeCtrl.Deactivate)
	}
}
