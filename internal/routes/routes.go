package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"card-system/internal/repositories"
	"card-system/internal/services"
	"card-system/pkg/config"
	"card-system/pkg/middleware"
	"card-system/pkg/service"
)

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, logger *zap.Logger, cfg *config.Config) {
	api := e.Group("/api")

	// --- РЕПОЗИТОРИИ ---
	txManager := repositories.NewTxManager(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	employeeRepo := repositories.NewEmployeeRepository(dbConn)
	roleRepo := repositories.NewRoleRepository(dbConn)
	accessLogRepo := repositories.NewAccessLogRepository(dbConn)
	requestRepo := repositories.NewCardRequestRepository(dbConn, logger)
	historyRepo := repositories.NewRequestHistoryRepository(dbConn)
	statusRepo := repositories.NewStatusRepository(dbConn)
	cardTypeRepo := repositories.NewCardTypeRepository(dbConn)
	branchRepo := repositories.NewBranchRepository(dbConn)
	orgRepo := repositories.NewOrganizationRepository(dbConn)
	userRepo := repositories.NewUserRepository(dbConn)
	uoRepo := repositories.NewUserOrganizationRepository(dbConn)
	cardRepo := repositories.NewCardRepository(dbConn)

	// --- СЕРВИСЫ ---
	authService := services.NewAuthService(employeeRepo, accessLogRepo, cacheRepo, jwtSvc, logger, &cfg.Auth)
	requestService := services.NewCardRequestService(
		requestRepo, historyRepo, statusRepo, cardTypeRepo, branchRepo,
		uoRepo, cardRepo, txManager, logger,
	)
	employeeService := services.NewEmployeeService(employeeRepo, roleRepo, logger)
	cardService := services.NewCardService(cardRepo, logger)
	dictionaryService := services.NewDictionaryService(
		statusRepo, cardTypeRepo, branchRepo, orgRepo, userRepo, uoRepo, logger,
	)

	// Актор восстанавливается на каждый запрос из БД через authService.
	authMW := middleware.NewAuthMiddleware(jwtSvc, authService, logger)

	runAuthRouter(api, authService, logger, authMW)
	runRequestRouter(api, requestService, logger, authMW)
	runEmployeeRouter(api, employeeService, logger, authMW)
	runCardRouter(api, cardService, logger, authMW)
	runDictionaryRouter(api, dictionaryService, logger, authMW)
}
