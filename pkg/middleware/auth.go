package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"card-system/pkg/contextkeys"
	apperrors "card-system/pkg/errors"
	"card-system/pkg/service"
	"card-system/pkg/types"
	"card-system/pkg/utils"
)

// ActorResolver разрешает токен в актуальный слепок сотрудника.
// Слепок перечитывается из БД на каждый запрос: смена роли или деактивация
// учётной записи действуют немедленно, без «протухшей» роли в сессии.
type ActorResolver interface {
	ResolveActor(ctx context.Context, employeeID uint64) (types.Actor, error)
}

type AuthMiddleware struct {
	jwtService    service.JWTService
	actorResolver ActorResolver
	logger        *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, actorResolver ActorResolver, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:    jwtSvc,
		actorResolver: actorResolver,
		logger:        logger,
	}
}

func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			m.logger.Warn("AuthMiddleware: Пустой заголовок Authorization")
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.logger.Warn("AuthMiddleware: Неверный формат заголовка Authorization")
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, m.logger)
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("AuthMiddleware: Ошибка валидации токена", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		if claims.IsRefreshToken {
			m.logger.Warn("AuthMiddleware: Попытка доступа с refresh токеном")
			return utils.ErrorResponse(c, apperrors.ErrTokenIsNotAccess, m.logger)
		}

		actor, err := m.actorResolver.ResolveActor(c.Request().Context(), claims.EmployeeID)
		if err != nil {
			m.logger.Warn("AuthMiddleware: Не удалось разрешить актора",
				zap.Uint64("employeeID", claims.EmployeeID), zap.Error(err))
			return utils.ErrorResponse(c, apperrors.ErrUnauthorized, m.logger)
		}

		newCtx := context.WithValue(c.Request().Context(), contextkeys.ActorKey, actor)
		c.SetRequest(c.Request().WithContext(newCtx))

		return next(c)
	}
}
