package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"card-system/internal/dto"
	"card-system/internal/entities"
	"card-system/internal/repositories"
	"card-system/pkg/config"
	"card-system/pkg/constants"
	apperrors "card-system/pkg/errors"
	"card-system/pkg/service"
	"card-system/pkg/types"
	"card-system/pkg/utils"
)

// LoginMeta — сведения о запросе, попадающие в журнал входов.
type LoginMeta struct {
	IPAddress string
	UserAgent string
}

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO, meta LoginMeta) (*dto.AuthResponseDTO, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponseDTO, error)
	Me(ctx context.Context) (*dto.EmployeePublicDTO, error)
	ResolveActor(ctx context.Context, employeeID uint64) (types.Actor, error)
}

type AuthService struct {
	employeeRepo  repositories.EmployeeRepositoryInterface
	accessLogRepo repositories.AccessLogRepositoryInterface
	cacheRepo     repositories.CacheRepositoryInterface
	jwtSvc        service.JWTService
	logger        *zap.Logger
	cfg           *config.AuthConfig
}

func NewAuthService(
	employeeRepo repositories.EmployeeRepositoryInterface,
	accessLogRepo repositories.AccessLogRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtSvc service.JWTService,
	logger *zap.Logger,
	cfg *config.AuthConfig,
) AuthServiceInterface {
	return &AuthService{
		employeeRepo:  employeeRepo,
		accessLogRepo: accessLogRepo,
		cacheRepo:     cacheRepo,
		jwtSvc:        jwtSvc,
		logger:        logger,
		cfg:           cfg,
	}
}

// Login проверяет учётные данные. Несуществующий email, неактивная учётная
// запись и неверный пароль дают один и тот же ответ: перебором нельзя
// выяснить, какие адреса зарегистрированы.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO, meta LoginMeta) (*dto.AuthResponseDTO, error) {
	logger := s.logger.With(zap.String("email", payload.Email))

	employee, err := s.employeeRepo.FindByEmailAndActive(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Попытка входа с неизвестным или неактивным email")
			s.writeAccessLog(ctx, nil, payload.Email, meta, false)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	lockoutKey := fmt.Sprintf(constants.CacheKeyLockout, employee.ID)
	if _, err := s.cacheRepo.Get(ctx, lockoutKey); err == nil {
		logger.Warn("Вход при действующей блокировке", zap.Uint64("employee_id", employee.ID))
		s.writeAccessLog(ctx, &employee.ID, payload.Email, meta, false)
		return nil, apperrors.ErrAccountLocked
	}

	if err := utils.ComparePasswords(employee.PasswordHash, payload.Password); err != nil {
		s.registerFailedAttempt(ctx, employee.ID, logger)
		s.writeAccessLog(ctx, &employee.ID, payload.Email, meta, false)
		return nil, apperrors.ErrInvalidCredentials
	}

	attemptsKey := fmt.Sprintf(constants.CacheKeyLoginAttempts, employee.ID)
	if err := s.cacheRepo.Del(ctx, attemptsKey); err != nil {
		logger.Warn("Не удалось сбросить счётчик попыток входа", zap.Error(err))
	}

	s.writeAccessLog(ctx, &employee.ID, payload.Email, meta, true)

	return s.buildAuthResponse(employee)
}

func (s *AuthService) registerFailedAttempt(ctx context.Context, employeeID uint64, logger *zap.Logger) {
	attemptsKey := fmt.Sprintf(constants.CacheKeyLoginAttempts, employeeID)
	attempts, err := s.cacheRepo.Incr(ctx, attemptsKey)
	if err != nil {
		logger.Warn("Не удалось увеличить счётчик попыток входа", zap.Error(err))
		return
	}
	if attempts == 1 {
		if _, err := s.cacheRepo.Expire(ctx, attemptsKey, s.cfg.LockoutDuration); err != nil {
			logger.Warn("Не удалось задать TTL счётчика попыток входа", zap.Error(err))
		}
	}
	if attempts >= int64(s.cfg.MaxLoginAttempts) {
		lockoutKey := fmt.Sprintf(constants.CacheKeyLockout, employeeID)
		if err := s.cacheRepo.Set(ctx, lockoutKey, "locked", s.cfg.LockoutDuration); err != nil {
			logger.Error("Не удалось установить блокировку учётной записи", zap.Error(err))
			return
		}
		_ = s.cacheRepo.Del(ctx, attemptsKey)
		logger.Warn("Учётная запись заблокирована по числу попыток входа",
			zap.Uint64("employee_id", employeeID),
			zap.Int64("attempts", attempts))
	}
}

func (s *AuthService) writeAccessLog(ctx context.Context, employeeID *uint64, email string, meta LoginMeta, successful bool) {
	err := s.accessLogRepo.CreateAccessLog(ctx, entities.AccessLog{
		EmployeeID:   employeeID,
		Email:        email,
		IPAddress:    meta.IPAddress,
		UserAgent:    meta.UserAgent,
		IsSuccessful: successful,
	})
	if err != nil {
		// Вход не должен падать из-за журнала.
		s.logger.Error("Не удалось записать журнал входов", zap.Error(err))
	}
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponseDTO, error) {
	claims, err := s.jwtSvc.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	employee, err := s.employeeRepo.FindEmployee(ctx, claims.EmployeeID)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	if !employee.IsActive {
		return nil, apperrors.ErrUnauthorized
	}

	return s.buildAuthResponse(employee)
}

func (s *AuthService) Me(ctx context.Context) (*dto.EmployeePublicDTO, error) {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	employee, err := s.employeeRepo.FindEmployee(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	public := toEmployeePublicDTO(employee)
	return &public, nil
}

// ResolveActor восстанавливает актора по employeeID из токена. Роль и
// активность читаются из хранилища на каждый запрос: деактивация или смена
// роли действует немедленно, а не при следующем входе.
func (s *AuthService) ResolveActor(ctx context.Context, employeeID uint64) (types.Actor, error) {
	employee, err := s.employeeRepo.FindEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return types.Actor{}, apperrors.ErrUnauthorized
		}
		return types.Actor{}, err
	}
	if !employee.IsActive {
		return types.Actor{}, apperrors.ErrUnauthorized
	}
	roleCode := constants.RoleManager
	if employee.Role != nil {
		roleCode = employee.Role.Code
	}
	return types.Actor{ID: employee.ID, RoleCode: roleCode}, nil
}

func (s *AuthService) buildAuthResponse(employee *entities.Employee) (*dto.AuthResponseDTO, error) {
	accessToken, refreshToken, err := s.jwtSvc.GenerateTokens(employee.ID)
	if err != nil {
		return nil, fmt.Errorf("не удалось выпустить токены: %w", err)
	}
	return &dto.AuthResponseDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Employee:     toEmployeePublicDTO(employee),
	}, nil
}

func toEmployeePublicDTO(e *entities.Employee) dto.EmployeePublicDTO {
	d := dto.EmployeePublicDTO{
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
