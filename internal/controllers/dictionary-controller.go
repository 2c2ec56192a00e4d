package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"card-system/internal/services"
	"card-system/pkg/utils"
)

type DictionaryController struct {
	dictionaryService services.DictionaryServiceInterface
	logger            *zap.Logger
}

func NewDictionaryController(dictionaryService services.DictionaryServiceInterface, logger *zap.Logger) *DictionaryController {
	return &DictionaryController{dictionaryService: dictionaryService, logger: logger}
}

func (c *DictionaryController) GetStatuses(ctx echo.Context) error {
	statuses, err := c.dictionaryService.GetStatuses(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, statuses, "Справочник статусов получен", http.StatusOK)
}

func (c *DictionaryController) GetCardTypes(ctx echo.Context) error {
	cardTypes, err := c.dictionaryService.GetCardTypes(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, cardTypes, "Справочник типов карт получен", http.StatusOK)
}

func (c *DictionaryController) GetBranches(ctx echo.Context) error {
	branches, err := c.dictionaryService.GetBranches(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, branches, "Справочник отделений получен", http.StatusOK)
}

func (c *DictionaryController) GetOrganizations(ctx echo.Context) error {
	organizations, err := c.dictionaryService.GetOrganizations(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, organizations, "Справочник организаций получен", http.StatusOK)
}

func (c *DictionaryController) GetUsers(ctx echo.Context) error {
	users, err := c.dictionaryService.GetUsers(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, users, "Список клиентов получен", http.StatusOK)
}

func (c *DictionaryController) GetOrganizationUsers(ctx echo.Context) error {
	organizationID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	users, err := c.dictionaryService.GetOrganizationUsers(ctx.Request().Context(), organizationID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, users, "Сотрудники организации получены", http.StatusOK)
}
