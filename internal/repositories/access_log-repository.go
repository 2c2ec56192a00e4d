package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"card-system/internal/entities"
)

type AccessLogRepositoryInterface interface {
	CreateAccessLog(ctx context.Context, log entities.AccessLog) error
}

type AccessLogRepository struct {
	storage *pgxpool.Pool
}

func NewAccessLogRepository(storage *pgxpool.Pool) AccessLogRepositoryInterface {
	return &AccessLogRepository{storage: storage}
}

func (r *AccessLogRepository) CreateAccessLog(ctx context.Context, log entities.AccessLog) error {
	_, err := r.storage.Exec(ctx,
		`INSERT INTO access_logs (employee_id, email, ip_address, user_agent, is_successful, login_time)
		 VALUES ($1, $2, $3, $4, $5, NOW())`,
		log.EmployeeID, log.Email, log.IPAddress, log.UserAgent, log.IsSuccessful,
	)
	if err != nil {
		return fmt.Errorf("ошибка записи журнала входов: %w", err)
	}
	return nil
}
