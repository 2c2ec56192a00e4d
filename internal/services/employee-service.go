package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"card-system/internal/dto"
	"card-system/internal/entities"
	"card-system/internal/repositories"
	"card-system/pkg/constants"
	apperrors "card-system/pkg/errors"
	"card-system/pkg/utils"
)

type EmployeeServiceInterface interface {
	GetProfile(ctx context.Context) (*dto.ProfileDTO, error)
	CreateManager(ctx context.Context, payload dto.CreateManagerDTO) (*dto.EmployeeDTO, error)
	SetActive(ctx context.Context, id uint64, isActive bool) (*dto.EmployeeDTO, error)
}

type EmployeeService struct {
	employeeRepo repositories.EmployeeRepositoryInterface
	roleRepo     repositories.RoleRepositoryInterface
	logger       *zap.Logger
}

func NewEmployeeService(
	employeeRepo repositories.EmployeeRepositoryInterface,
	roleRepo repositories.RoleRepositoryInterface,
	logger *zap.Logger,
) EmployeeServiceInterface {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		roleRepo:     roleRepo,
		logger:       logger,
	}
}

// GetProfile возвращает профиль текущего сотрудника. Администратор
// дополнительно получает список менеджеров для управления ими.
func (s *EmployeeService) GetProfile(ctx context.Context) (*dto.ProfileDTO, error) {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	employee, err := s.employeeRepo.FindEmployee(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	profile := &dto.ProfileDTO{
		Employee: toEmployeeDTO(employee),
		IsAdmin:  actor.IsAdmin(),
	}

	if actor.IsAdmin() {
		all, err := s.employeeRepo.GetEmployees(ctx)
		if err != nil {
			return nil, err
		}
		managers := make([]dto.EmployeeDTO, 0, len(all))
		for i := range all {
			if all[i].IsAdmin() {
				continue
			}
			managers = append(managers, toEmployeeDTO(&all[i]))
		}
		profile.Managers = managers
	}

	return profile, nil
}

// CreateManager создаёт менеджера. Доступно только администратору;
// назначить роль администратора через эту операцию нельзя ни при каких
// входных данных.
func (s *EmployeeService) CreateManager(ctx context.Context, payload dto.CreateManagerDTO) (*dto.EmployeeDTO, error) {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		return nil, apperrors.NewForbiddenError("создавать сотрудников может только администратор")
	}

	role, err := s.roleRepo.FindRole(ctx, payload.RoleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError("роль не найдена")
		}
		return nil, err
	}
	if role.Code == constants.RoleAdmin {
		return nil, apperrors.NewForbiddenError("создание администраторов через эту операцию запрещено")
	}

	exists, err := s.employeeRepo.EmailExists(ctx, payload.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflictError("сотрудник с таким email уже существует")
	}

	passwordHash, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	employee := entities.Employee{
		RoleID:       payload.RoleID,
		BranchID:     payload.BranchID,
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		Email:        payload.Email,
		Phone:        payload.Phone,
		PasswordHash: passwordHash,
		IsActive:     true,
	}
	if payload.MiddleName != "" {
		employee.MiddleName = &payload.MiddleName
	}

	newID, err := s.employeeRepo.CreateEmployee(ctx, employee)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Создан менеджер",
		zap.Uint64("employee_id", newID),
		zap.Uint64("created_by", actor.ID))

	created, err := s.employeeRepo.FindEmployee(ctx, newID)
	if err != nil {
		return nil, err
	}
	result := toEmployeeDTO(created)
	return &result, nil
}

func (s *EmployeeService) SetActive(ctx context.Context, id uint64, isActive bool) (*dto.EmployeeDTO, error) {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		return nil, apperrors.NewForbiddenError("управлять сотрудниками может только администратор")
	}
	if actor.ID == id && !isActive {
		return nil, apperrors.NewValidationError("нельзя деактивировать собственную учётную запись")
	}

	if err := s.employeeRepo.SetActive(ctx, id, isActive); err != nil {
		return nil, err
	}

	s.logger.Info("Изменена активность сотрудника",
		zap.Uint64("employee_id", id),
		zap.Bool("is_active", isActive),
		zap.Uint64("changed_by", actor.ID))

	employee, err := s.employeeRepo.FindEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toEmployeeDTO(employee)
	return &result, nil
}

func toEmployeeDTO(e *entities.Employee) dto.EmployeeDTO {
	d := dto.EmployeeDTO{
		ID:       e.ID,
		FIO:      e.FullName(),
		Email:    e.Email,
		Phone:    e.Phone,
		BranchID: e.BranchID,
		IsActive: e.IsActive,
	}
	if e.Role != nil {
		d.RoleCode = string(e.Role.Code)
		d.RoleName = e.Role.Name
	}
	return d
}
