package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"card-system/internal/dto"
	"card-system/internal/entities"
	"card-system/internal/repositories"
	apperrors "card-system/pkg/errors"
	"card-system/pkg/utils"
)

type CardServiceInterface interface {
	GetCards(ctx context.Context) ([]dto.CardDTO, error)
	GetCard(ctx context.Context, id uint64) (*dto.CardDTO, error)
}

type CardService struct {
	cardRepo repositories.CardRepositoryInterface
	logger   *zap.Logger
}

func NewCardService(cardRepo repositories.CardRepositoryInterface, logger *zap.Logger) CardServiceInterface {
	return &CardService{cardRepo: cardRepo, logger: logger}
}

func (s *CardService) GetCards(ctx context.Context) ([]dto.CardDTO, error) {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	cards, err := s.cardRepo.GetCards(ctx, actor)
	if err != nil {
		return nil, err
	}

	result := make([]dto.CardDTO, 0, len(cards))
	for i := range cards {
		result = append(result, toCardDTO(&cards[i]))
	}
	return result, nil
}

func (s *CardService) GetCard(ctx context.Context, id uint64) (*dto.CardDTO, error) {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	card, err := s.cardRepo.FindCard(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		req := card.Request
		if req == nil || req.AssignedEmployeeID == nil || *req.AssignedEmployeeID != actor.ID {
			return nil, apperrors.NewForbiddenError("у вас нет прав для просмотра этой карты")
		}
	}

	result := toCardDTO(card)
	return &result, nil
}

func toCardDTO(c *entities.Card) dto.CardDTO {
	d := dto.CardDTO{
		ID:         c.ID,
		CardNumber: c.CardNumber,
		RequestID:  c.RequestID,
		ExpiresAt:  c.ExpiresAt.Format(time.RFC3339),
		IsActive:   c.IsActive,
		CreatedAt:  c.CreatedAt.Format(time.RFC3339),
	}
	if c.Request != nil {
		d.RequestNumber = c.Request.RequestNumber
		if c.Request.UserOrganization != nil && c.Request.UserOrganization.User != nil {
			u := c.Request.UserOrganization.User
			d.Client = dto.ShortUserDTO{ID: u.ID, FIO: u.FullName()}
		}
	}
	if c.Limit != nil {
		d.Limit = &dto.CardLimitDTO{
			DailyLimit:    c.Limit.DailyLimit,
			MonthlyLimit:  c.Limit.MonthlyLimit,
			SingleOpLimit: c.Limit.SingleOpLimit,
		}
	}
	return d
}
