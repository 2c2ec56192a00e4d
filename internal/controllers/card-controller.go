package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"card-system/internal/services"
	"card-system/pkg/utils"
)

type CardController struct {
	cardService services.CardServiceInterface
	logger      *zap.Logger
}

func NewCardController(cardService services.CardServiceInterface, logger *zap.Logger) *CardController {
	return &CardController{cardService: cardService, logger: logger}
}

func (c *CardController) GetCards(ctx echo.Context) error {
	cards, err := c.cardService.GetCards(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, cards, "Список карт получен", http.StatusOK)
}

func (c *CardController) GetCard(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	card, err := c.cardService.GetCard(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, card, "Карта получена", http.StatusOK)
}
