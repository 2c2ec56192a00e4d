package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"card-system/internal/entities"
)

type RequestHistoryRepositoryInterface interface {
	CreateHistory(ctx context.Context, tx pgx.Tx, history entities.RequestHistory) error
	GetHistoryByRequest(ctx context.Context, requestID uint64) ([]entities.RequestHistory, error)
}

type RequestHistoryRepository struct {
	storage *pgxpool.Pool
}

func NewRequestHistoryRepository(storage *pgxpool.Pool) RequestHistoryRepositoryInterface {
	return &RequestHistoryRepository{storage: storage}
}

// CreateHistory пишет запись журнала в той же транзакции, что и смена
// статуса: заявка не может поменять статус без следа в истории.
func (r *RequestHistoryRepository) CreateHistory(ctx context.Context, tx pgx.Tx, history entities.RequestHistory) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO request_history (request_id, old_status_id, new_status_id, changed_by_id, comment, changed_at)
		 VALUES ($1, $2, $3, $4, $5, NOW())`,
		history.RequestID, history.OldStatusID, history.NewStatusID,
		history.ChangedByID, history.Comment,
	)
	if err != nil {
		return fmt.Errorf("ошибка записи истории заявки: %w", err)
	}
	return nil
}

func (r *RequestHistoryRepository) GetHistoryByRequest(ctx context.Context, requestID uint64) ([]entities.RequestHistory, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT h.id, h.request_id, h.old_status_id, h.new_status_id, h.changed_by_id,
		       h.comment, h.changed_at,
		       os.name, ns.name,
		       e.first_name, e.last_name, e.middle_name
		FROM request_history h
		LEFT JOIN request_statuses os ON h.old_status_id = os.id
		JOIN request_statuses ns ON h.new_status_id = ns.id
		JOIN employees e ON h.changed_by_id = e.id
		WHERE h.request_id = $1
		ORDER BY h.changed_at DESC, h.id DESC`, requestID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения истории заявки: %w", err)
	}
	defer rows.Close()

	entries := make([]entities.RequestHistory, 0)
	for rows.Next() {
		var h entities.RequestHistory
		var oldStatusID sql.NullInt64
		var oldStatusName sql.NullString
		var newStatusName string
		var emp entities.Employee
		var empMiddleName sql.NullString

		err := rows.Scan(
			&h.ID, &h.RequestID, &oldStatusID, &h.NewStatusID, &h.ChangedByID,
			&h.Comment, &h.ChangedAt,
			&oldStatusName, &newStatusName,
			&emp.FirstName, &emp.LastName, &empMiddleName,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования истории заявки: %w", err)
		}

		if oldStatusID.Valid {
			id := uint64(oldStatusID.Int64)
			h.OldStatusID = &id
			h.OldStatus = &entities.RequestStatus{ID: id, Name: oldStatusName.String}
		}
		h.NewStatus = &entities.RequestStatus{ID: h.NewStatusID, Name: newStatusName}

		emp.ID = h.ChangedByID
		if empMiddleName.Valid {
			emp.MiddleName = &empMiddleName.String
		}
		h.ChangedBy = &emp

		entries = append(entries, h)
	}
	return entries, rows.Err()
}
