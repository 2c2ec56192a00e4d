package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"card-system/internal/dto"
	"card-system/internal/repositories"
)

// DictionaryService отдаёт справочники для форм: статусы, типы карт,
// отделения, организации и их сотрудников.
type DictionaryServiceInterface interface {
	GetStatuses(ctx context.Context) ([]dto.StatusDTO, error)
	GetCardTypes(ctx context.Context) ([]dto.CardTypeDTO, error)
	GetBranches(ctx context.Context) ([]dto.BranchDTO, error)
	GetOrganizations(ctx context.Context) ([]dto.OrganizationDTO, error)
	GetUsers(ctx context.Context) ([]dto.UserDTO, error)
	GetOrganizationUsers(ctx context.Context, organizationID uint64) ([]dto.OrganizationUserDTO, error)
}

type DictionaryService struct {
	statusRepo   repositories.StatusRepositoryInterface
	cardTypeRepo repositories.CardTypeRepositoryInterface
	branchRepo   repositories.BranchRepositoryInterface
	orgRepo      repositories.OrganizationRepositoryInterface
	userRepo     repositories.UserRepositoryInterface
	uoRepo       repositories.UserOrganizationRepositoryInterface
	logger       *zap.Logger
}

func NewDictionaryService(
	statusRepo repositories.StatusRepositoryInterface,
	cardTypeRepo repositories.CardTypeRepositoryInterface,
	branchRepo repositories.BranchRepositoryInterface,
	orgRepo repositories.OrganizationRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	uoRepo repositories.UserOrganizationRepositoryInterface,
	logger *zap.Logger,
) DictionaryServiceInterface {
	return &DictionaryService{
		statusRepo:   statusRepo,
		cardTypeRepo: cardTypeRepo,
		branchRepo:   branchRepo,
		orgRepo:      orgRepo,
		userRepo:     userRepo,
		uoRepo:       uoRepo,
		logger:       logger,
	}
}

func (s *DictionaryService) GetStatuses(ctx context.Context) ([]dto.StatusDTO, error) {
	statuses, err := s.statusRepo.GetStatuses(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.StatusDTO, 0, len(statuses))
	for _, st := range statuses {
		d := dto.StatusDTO{ID: st.ID, Code: string(st.Code), Name: st.Name}
		if st.Description != nil {
			d.Description = *st.Description
		}
		result = append(result, d)
	}
	return result, nil
}

func (s *DictionaryService) GetCardTypes(ctx context.Context) ([]dto.CardTypeDTO, error) {
	cardTypes, err := s.cardTypeRepo.GetCardTypes(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.CardTypeDTO, 0, len(cardTypes))
	for _, ct := range cardTypes {
		d := dto.CardTypeDTO{
			ID:        ct.ID,
			TypeName:  ct.TypeName,
			AnnualFee: ct.AnnualFee,
			Currency:  ct.Currency,
		}
		if ct.Description != nil {
			d.Description = *ct.Description
		}
		result = append(result, d)
	}
	return result, nil
}

func (s *DictionaryService) GetBranches(ctx context.Context) ([]dto.BranchDTO, error) {
	branches, err := s.branchRepo.GetBranches(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.BranchDTO, 0, len(branches))
	for _, b := range branches {
		result = append(result, dto.BranchDTO{
			ID:        b.ID,
			Name:      b.Name,
			Address:   b.Address,
			Phone:     b.Phone,
			WorkHours: b.WorkHours,
			IsActive:  b.IsActive,
		})
	}
	return result, nil
}

func (s *DictionaryService) GetOrganizations(ctx context.Context) ([]dto.OrganizationDTO, error) {
	organizations, err := s.orgRepo.GetOrganizations(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.OrganizationDTO, 0, len(organizations))
	for _, o := range organizations {
		result = append(result, dto.OrganizationDTO{
			ID:           o.ID,
			Name:         o.Name,
			INN:          o.INN,
			LegalAddress: o.LegalAddress,
			Phone:        o.Phone,
			Email:        o.Email,
			IsActive:     o.IsActive,
		})
	}
	return result, nil
}

func (s *DictionaryService) GetUsers(ctx context.Context) ([]dto.UserDTO, error) {
	users, err := s.userRepo.GetUsers(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		u := &users[i]
		d := dto.UserDTO{ID: u.ID, FIO: u.FullName(), Phone: u.Phone}
		if u.Email != nil {
			d.Email = *u.Email
		}
		result = append(result, d)
	}
	return result, nil
}

// GetOrganizationUsers возвращает клиентов организации, у которых связь
// действует на текущую дату. Просроченные и ещё не начавшиеся связи в
// выдачу не попадают.
func (s *DictionaryService) GetOrganizationUsers(ctx context.Context, organizationID uint64) ([]dto.OrganizationUserDTO, error) {
	links, err := s.uoRepo.GetByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := make([]dto.OrganizationUserDTO, 0, len(links))
	for i := range links {
		link := &links[i]
		if !link.IsCurrentlyActive(now) {
			continue
		}
		d := dto.OrganizationUserDTO{
			UserOrganizationID: link.ID,
			UserID:             link.UserID,
			Position:           link.Position,
		}
		if link.User != nil {
			d.FIO = link.User.FullName()
			d.Phone = link.User.Phone
			if link.User.Email != nil {
				d.Email = *link.User.Email
			}
		}
		result = append(result, d)
	}
	return result, nil
}
