package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"card-system/internal/dto"
	"card-system/internal/services"
	"card-system/pkg/types"
	"card-system/pkg/utils"
)

type CardRequestController struct {
	requestService services.CardRequestServiceInterface
	logger         *zap.Logger
}

func NewCardRequestController(requestService services.CardRequestServiceInterface, logger *zap.Logger) *CardRequestController {
	return &CardRequestController{requestService: requestService, logger: logger}
}

// parseFilter собирает фильтр реестра из query-параметров. Нечитаемые
// значения молча пропускаются: фильтр без условия шире, чем с ним.
func (c *CardRequestController) parseFilter(ctx echo.Context) types.RequestFilter {
	var filter types.RequestFilter

	parseID := func(name string) *uint64 {
		if s := ctx.QueryParam(name); s != "" {
			if id, err := strconv.ParseUint(s, 10, 64); err == nil {
				return &id
			}
		}
		return nil
	}
	filter.UserID = parseID("user_id")
	filter.OrganizationID = parseID("organization_id")
	filter.CardTypeID = parseID("card_type_id")
	filter.AssignedEmployeeID = parseID("assigned_employee_id")
	filter.StatusID = parseID("status_id")

	parseDate := func(name string) *time.Time {
		s := ctx.QueryParam(name)
		if s == "" {
			return nil
		}
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return &t
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return &t
		}
		return nil
	}
	filter.DateFrom = parseDate("date_from")
	filter.DateTo = parseDate("date_to")

	filter.SortBy = ctx.QueryParam("sort_by")
	filter.SortDirection = ctx.QueryParam("sort_direction")
	return filter
}

func (c *CardRequestController) GetRequests(ctx echo.Context) error {
	filter := c.parseFilter(ctx)
	requests, err := c.requestService.GetRequests(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, requests, "Список заявок получен", http.StatusOK)
}

func (c *CardRequestController) GetRequest(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	request, err := c.requestService.GetRequest(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, request, "Заявка получена", http.StatusOK)
}

func (c *CardRequestController) CreateRequest(ctx echo.Context) error {
	var payload dto.CreateCardRequestDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	request, err := c.requestService.CreateRequest(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, request, "Заявка создана", http.StatusCreated)
}

func (c *CardRequestController) UpdateRequest(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateCardRequestDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	request, err := c.requestService.UpdateRequest(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, request, "Заявка обновлена", http.StatusOK)
}

func (c *CardRequestController) ChangeStatus(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.ChangeStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	request, err := c.requestService.ChangeStatus(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, request, "Статус заявки изменён", http.StatusOK)
}

func (c *CardRequestController) GetHistory(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	history, err := c.requestService.GetHistory(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, history, "История заявки получена", http.StatusOK)
}

var registerHeaders = []string{
	"Номер заявки", "Клиент", "Организация", "Должность", "Тип карты",
	"Отделение", "Статус", "Менеджер", "Комментарий", "Создана", "Обновлена",
}

func requestRowToSlice(item dto.CardRequestDTO) []interface{} {
	var manager string
	if item.AssignedEmployee != nil {
		manager = item.AssignedEmployee.FIO
	}
	return []interface{}{
		item.RequestNumber, item.Client.FIO, item.Organization.Name, item.Position,
		item.CardType.TypeName, item.Branch.Name, item.Status.Name, manager,
		item.Comments, item.CreatedAt, item.UpdatedAt,
	}
}

// ExportRequests выгружает отфильтрованный реестр заявок в xlsx.
// Видимость та же, что и у списка: менеджер выгружает только свои заявки.
func (c *CardRequestController) ExportRequests(ctx echo.Context) error {
	filter := c.parseFilter(ctx)
	requests, err := c.requestService.GetRequests(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	f := excelize.NewFile()
	sheet := "Реестр заявок"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &registerHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "K1", style)

	for i, item := range requests {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := requestRowToSlice(item)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "A", "A", 22)
	f.SetColWidth(sheet, "B", "C", 30)
	f.SetColWidth(sheet, "D", "H", 20)
	f.SetColWidth(sheet, "I", "I", 40)
	f.SetColWidth(sheet, "J", "K", 22)

	fileName := fmt.Sprintf("requests_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
