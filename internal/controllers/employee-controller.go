package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"card-system/internal/dto"
	"card-system/internal/services"
	"card-system/pkg/utils"
)

type EmployeeController struct {
	employeeService services.EmployeeServiceInterface
	logger          *zap.Logger
}

func NewEmployeeController(employeeService services.EmployeeServiceInterface, logger *zap.Logger) *EmployeeController {
	return &EmployeeController{employeeService: employeeService, logger: logger}
}

func (c *EmployeeController) GetProfile(ctx echo.Context) error {
	profile, err := c.employeeService.GetProfile(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, profile, "Профиль получен", http.StatusOK)
}

func (c *EmployeeController) CreateManager(ctx echo.Context) error {
	var payload dto.CreateManagerDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	employee, err := c.employeeService.CreateManager(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, employee, "Менеджер создан", http.StatusCreated)
}

func (c *EmployeeController) Activate(ctx echo.Context) error {
	return c.setActive(ctx, true, "Сотрудник активирован")
}

func (c *EmployeeController) Deactivate(ctx echo.Context) error {
	return c.setActive(ctx, false, "Сотрудник деактивирован")
}

func (c *EmployeeController) setActive(ctx echo.Context, isActive bool, message string) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	employee, err := c.employeeService.SetActive(ctx.Request().Context(), id, isActive)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, employee, message, http.StatusOK)
}
