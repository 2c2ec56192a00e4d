package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"card-system/internal/entities"
	"card-system/pkg/constants"
	apperrors "card-system/pkg/errors"
)

type StatusRepositoryInterface interface {
	GetStatuses(ctx context.Context) ([]entities.RequestStatus, error)
	FindStatus(ctx context.Context, id uint64) (*entities.RequestStatus, error)
	FindStatusByCode(ctx context.Context, code constants.StatusCode) (*entities.RequestStatus, error)
}

type StatusRepository struct {
	storage *pgxpool.Pool
}

func NewStatusRepository(storage *pgxpool.Pool) StatusRepositoryInterface {
	return &StatusRepository{storage: storage}
}

func scanStatus(row pgx.Row) (*entities.RequestStatus, error) {
	var s entities.RequestStatus
	var code string
	err := row.Scan(&s.ID, &code, &s.Name, &s.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования статуса: %w", err)
	}
	s.Code = constants.StatusCode(code)
	return &s, nil
}

func (r *StatusRepository) GetStatuses(ctx context.Context) ([]entities.RequestStatus, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT id, code, name, description FROM request_statuses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения статусов: %w", err)
	}
	defer rows.Close()

	statuses := make([]entities.RequestStatus, 0)
	for rows.Next() {
		status, err := scanStatus(rows)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, *status)
	}
	return statuses, rows.Err()
}

func (r *StatusRepository) FindStatus(ctx context.Context, id uint64) (*entities.RequestStatus, error) {
	return scanStatus(r.storage.QueryRow(ctx,
		`SELECT id, code, name, description FROM request_statuses WHERE id = $1`, id))
}

func (r *StatusRepository) FindStatusByCode(ctx context.Context, code constants.StatusCode) (*entities.RequestStatus, error) {
	return scanStatus(r.storage.QueryRow(ctx,
		`SELECT id, code, name, description FROM request_statuses WHERE code = $1`, string(code)))
}
