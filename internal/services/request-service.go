package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"card-system/internal/dto"
	"card-system/internal/entities"
	"card-system/internal/repositories"
	"card-system/pkg/constants"
	apperrors "card-system/pkg/errors"
	"card-system/pkg/types"
	"card-system/pkg/utils"
)

// Срок действия выпускаемой карты.
const cardValidityYears = 4

type CardRequestServiceInterface interface {
	GetRequests(ctx context.Context, filter types.RequestFilter) ([]dto.CardRequestDTO, error)
	GetRequest(ctx context.Context, id uint64) (*dto.CardRequestDTO, error)
	CreateRequest(ctx context.Context, payload dto.CreateCardRequestDTO) (*dto.CardRequestDTO, error)
	UpdateRequest(ctx context.Context, id uint64, payload dto.UpdateCardRequestDTO) (*dto.CardRequestDTO, error)
	ChangeStatus(ctx context.Context, id uint64, payload dto.ChangeStatusDTO) (*dto.CardRequestDTO, error)
	GetHistory(ctx context.Context, id uint64) ([]dto.RequestHistoryDTO, error)
}

type CardRequestService struct {
	requestRepo  repositories.CardRequestRepositoryInterface
	historyRepo  repositories.RequestHistoryRepositoryInterface
	statusRepo   repositories.StatusRepositoryInterface
	cardTypeRepo repositories.CardTypeRepositoryInterface
	branchRepo   repositories.BranchRepositoryInterface
	uoRepo       repositories.UserOrganizationRepositoryInterface
	cardRepo     repositories.CardRepositoryInterface
	txManager    repositories.TxManagerInterface
	logger       *zap.Logger
}

func NewCardRequestService(
	requestRepo repositories.CardRequestRepositoryInterface,
	historyRepo repositories.RequestHistoryRepositoryInterface,
	statusRepo repositories.StatusRepositoryInterface,
	cardTypeRepo repositories.CardTypeRepositoryInterface,
	branchRepo repositories.BranchRepositoryInterface,
	uoRepo repositories.UserOrganizationRepositoryInterface,
	cardRepo repositories.CardRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) CardRequestServiceInterface {
	return &CardRequestService{
		requestRepo:  requestRepo,
		historyRepo:  historyRepo,
		statusRepo:   statusRepo,
		cardTypeRepo: cardTypeRepo,
		branchRepo:   branchRepo,
		uoRepo:       uoRepo,
		cardRepo:     cardRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

func (s *CardRequestService) GetRequests(ctx context.Context, filter types.RequestFilter) ([]dto.CardRequestDTO, error) {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	requests, err := s.requestRepo.GetRequests(ctx, actor, filter)
	if err != nil {
		return nil, err
	}

	result := make([]dto.CardRequestDTO, 0, len(requests))
	for i := range requests {
		result = append(result, toCardRequestDTO(&requests[i]))
	}
	return result, nil
}

// findVisible возвращает заявку, если актор имеет право её видеть.
// Менеджеру доступны только заявки, закреплённые за ним.
func (s *CardRequestService) findVisible(ctx context.Context, actor types.Actor, id uint64) (*entities.CardRequest, error) {
	request, err := s.requestRepo.FindRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		if request.AssignedEmployeeID == nil || *request.AssignedEmployeeID != actor.ID {
			return nil, apperrors.NewForbiddenError("у вас нет прав для просмотра этой заявки")
		}
	}
	return request, nil
}

func (s *CardRequestService) GetRequest(ctx context.Context, id uint64) (*dto.CardRequestDTO, error) {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	request, err := s.findVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	result := toCardRequestDTO(request)
	return &result, nil
}

func (s *CardRequestService) CreateRequest(ctx context.Context, payload dto.CreateCardRequestDTO) (*dto.CardRequestDTO, error) {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	link, err := s.uoRepo.FindUserOrganization(ctx, payload.UserOrganizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError("связь клиента с организацией не найдена")
		}
		return nil, err
	}
	if !link.IsCurrentlyActive(time.Now()) {
		return nil, apperrors.NewValidationError("связь клиента с организацией не действует")
	}

	if _, err := s.cardTypeRepo.FindCardType(ctx, payload.CardTypeID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError("тип карты не найден")
		}
		return nil, err
	}
	if _, err := s.branchRepo.FindBranch(ctx, payload.BranchID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError("отделение не найдено")
		}
		return nil, err
	}

	initialStatus, err := s.statusRepo.FindStatusByCode(ctx, constants.StatusNew)
	if err != nil {
		return nil, err
	}

	assignedID := actor.ID
	request := entities.CardRequest{
		RequestNumber:      utils.GenerateRequestNumber(utils.RequestNumberPrefix, time.Now()),
		UserOrganizationID: payload.UserOrganizationID,
		CardTypeID:         payload.CardTypeID,
		BranchID:           payload.BranchID,
		StatusID:           initialStatus.ID,
		AssignedEmployeeID: &assignedID,
	}
	if payload.Comments != "" {
		request.Comments = &payload.Comments
	}

	var newID uint64
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		newID, err = s.requestRepo.CreateRequest(ctx, tx, request)
		if err != nil {
			return err
		}
		return s.historyRepo.CreateHistory(ctx, tx, entities.RequestHistory{
			RequestID:   newID,
			NewStatusID: initialStatus.ID,
			ChangedByID: actor.ID,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Создана заявка на карту",
		zap.Uint64("request_id", newID),
		zap.String("request_number", request.RequestNumber),
		zap.Uint64("employee_id", actor.ID))

	return s.GetRequest(ctx, newID)
}

func (s *CardRequestService) UpdateRequest(ctx context.Context, id uint64, payload dto.UpdateCardRequestDTO) (*dto.CardRequestDTO, error) {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	request, err := s.findVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !request.CanEdit() {
		return nil, apperrors.NewInvalidStateError("заявка в статусе «Выпущена» не может быть изменена")
	}

	updated := *request
	if payload.UserOrganizationID.Valid {
		link, err := s.uoRepo.FindUserOrganization(ctx, payload.UserOrganizationID.Uint64)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidationError("связь клиента с организацией не найдена")
			}
			return nil, err
		}
		if !link.IsCurrentlyActive(time.Now()) {
			return nil, apperrors.NewValidationError("связь клиента с организацией не действует")
		}
		updated.UserOrganizationID = payload.UserOrganizationID.Uint64
	}
	if payload.CardTypeID.Valid {
		if _, err := s.cardTypeRepo.FindCardType(ctx, payload.CardTypeID.Uint64); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidationError("тип карты не найден")
			}
			return nil, err
		}
		updated.CardTypeID = payload.CardTypeID.Uint64
	}
	if payload.BranchID.Valid {
		if _, err := s.branchRepo.FindBranch(ctx, payload.BranchID.Uint64); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidationError("отделение не найдено")
			}
			return nil, err
		}
		updated.BranchID = payload.BranchID.Uint64
	}
	if payload.Comments.Valid {
		if payload.Comments.String == "" {
			updated.Comments = nil
		} else {
			comments := payload.Comments.String
			updated.Comments = &comments
		}
	}

	// Статус перепроверяется под блокировкой строки: параллельный перевод
	// в «Выпущена» мог закоммититься после первоначального чтения.
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		currentStatusID, err := s.requestRepo.LockRequestStatus(ctx, tx, id)
		if err != nil {
			return err
		}
		currentStatus, err := s.statusRepo.FindStatus(ctx, currentStatusID)
		if err != nil {
			return err
		}
		if currentStatus.Code == constants.StatusIssued {
			return apperrors.NewInvalidStateError("заявка в статусе «Выпущена» не может быть изменена")
		}
		return s.requestRepo.UpdateRequest(ctx, tx, id, updated)
	})
	if err != nil {
		return nil, err
	}

	return s.GetRequest(ctx, id)
}

// ChangeStatus переводит заявку в новый статус. Смена статуса, запись в
// историю и выпуск карты происходят в одной транзакции, под блокировкой
// строки заявки: две параллельные смены не перескочат через «Выпущена».
func (s *CardRequestService) ChangeStatus(ctx context.Context, id uint64, payload dto.ChangeStatusDTO) (*dto.CardRequestDTO, error) {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	request, err := s.findVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	newStatus, err := s.statusRepo.FindStatus(ctx, payload.NewStatusID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError("статус не найден")
		}
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		currentStatusID, err := s.requestRepo.LockRequestStatus(ctx, tx, id)
		if err != nil {
			return err
		}
		currentStatus, err := s.statusRepo.FindStatus(ctx, currentStatusID)
		if err != nil {
			return err
		}
		if currentStatus.Code == constants.StatusIssued {
			return apperrors.NewInvalidStateError("заявка в статусе «Выпущена» не может быть изменена")
		}

		if err := s.requestRepo.UpdateStatus(ctx, tx, id, newStatus.ID); err != nil {
			return err
		}

		history := entities.RequestHistory{
			RequestID:   id,
			OldStatusID: &currentStatusID,
			NewStatusID: newStatus.ID,
			ChangedByID: actor.ID,
		}
		if payload.Comment != "" {
			comment := payload.Comment
			history.Comment = &comment
		}
		if err := s.historyRepo.CreateHistory(ctx, tx, history); err != nil {
			return err
		}

		if newStatus.Code == constants.StatusIssued {
			return s.issueCard(ctx, tx, request)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Сменён статус заявки",
		zap.Uint64("request_id", id),
		zap.String("new_status", string(newStatus.Code)),
		zap.Uint64("employee_id", actor.ID))

	return s.GetRequest(ctx, id)
}

// issueCard создаёт карту и её лимиты по шаблону типа карты. Вызывается
// внутри транзакции смены статуса.
func (s *CardRequestService) issueCard(ctx context.Context, tx pgx.Tx, request *entities.CardRequest) error {
	card := entities.Card{
		RequestID:  request.ID,
		CardNumber: utils.GenerateCardNumber(),
		ExpiresAt:  time.Now().AddDate(cardValidityYears, 0, 0),
		IsActive:   true,
	}
	cardID, err := s.cardRepo.CreateCard(ctx, tx, card)
	if err != nil {
		return err
	}

	template, err := s.cardTypeRepo.FindDefaultLimitTemplate(ctx, request.CardTypeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Тип карты без шаблона лимитов: карта выпускается без лимитов.
			s.logger.Warn("Шаблон лимитов не найден, карта выпущена без лимитов",
				zap.Uint64("card_type_id", request.CardTypeID))
			return nil
		}
		return err
	}

	return s.cardRepo.CreateCardLimit(ctx, tx, entities.CardLimit{
		CardID:        cardID,
		DailyLimit:    template.DailyLimit,
		MonthlyLimit:  template.MonthlyLimit,
		SingleOpLimit: template.SingleOpLimit,
	})
}

func (s *CardRequestService) GetHistory(ctx context.Context, id uint64) ([]dto.RequestHistoryDTO, error) {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.findVisible(ctx, actor, id); err != nil {
		return nil, err
	}

	entries, err := s.historyRepo.GetHistoryByRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	result := make([]dto.RequestHistoryDTO, 0, len(entries))
	for i := range entries {
		result = append(result, toRequestHistoryDTO(&entries[i]))
	}
	return result, nil
}

func toCardRequestDTO(r *entities.CardRequest) dto.CardRequestDTO {
	d := dto.CardRequestDTO{
		ID:            r.ID,
		RequestNumber: r.RequestNumber,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     r.UpdatedAt.Format(time.RFC3339),
	}
	if r.Comments != nil {
		d.Comments = *r.Comments
	}
	if uo := r.UserOrganization; uo != nil {
		d.Position = uo.Position
		if uo.User != nil {
			d.Client = dto.ShortUserDTO{ID: uo.User.ID, FIO: uo.User.FullName()}
		}
		if uo.Organization != nil {
			d.Organization = dto.ShortOrgDTO{ID: uo.Organization.ID, Name: uo.Organization.Name}
		}
	}
	if r.CardType != nil {
		d.CardType = dto.ShortCardTypeDTO{ID: r.CardType.ID, TypeName: r.CardType.TypeName}
	}
	if r.Branch != nil {
		d.Branch = dto.ShortBranchDTO{ID: r.Branch.ID, Name: r.Branch.Name}
	}
	if r.Status != nil {
		d.Status = dto.ShortStatusDTO{ID: r.Status.ID, Code: string(r.Status.Code), Name: r.Status.Name}
	}
	if r.AssignedEmployee != nil {
		d.AssignedEmployee = &dto.ShortEmployeeDTO{ID: r.AssignedEmployee.ID, FIO: r.AssignedEmployee.FullName()}
	}
	return d
}

func toRequestHistoryDTO(h *entities.RequestHistory) dto.RequestHistoryDTO {
	d := dto.RequestHistoryDTO{
		ID:        h.ID,
		ChangedAt: h.ChangedAt.Format(time.RFC3339),
	}
	if h.OldStatus != nil {
		d.OldStatus = &dto.ShortStatusDTO{ID: h.OldStatus.ID, Code: string(h.OldStatus.Code), Name: h.OldStatus.Name}
	}
	if h.NewStatus != nil {
		d.NewStatus = dto.ShortStatusDTO{ID: h.NewStatus.ID, Code: string(h.NewStatus.Code), Name: h.NewStatus.Name}
	}
	if h.ChangedBy != nil {
		d.ChangedBy = dto.ShortEmployeeDTO{ID: h.ChangedBy.ID, FIO: h.ChangedBy.FullName()}
	}
	if h.Comment != nil {
		d.Comment = *h.Comment
	}
	return d
}
