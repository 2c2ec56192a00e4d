package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"card-system/internal/entities"
	apperrors "card-system/pkg/errors"
)

type BranchRepositoryInterface interface {
	GetBranches(ctx context.Context) ([]entities.Branch, error)
	FindBranch(ctx context.Context, id uint64) (*entities.Branch, error)
}

type BranchRepository struct {
	storage *pgxpool.Pool
}

func NewBranchRepository(storage *pgxpool.Pool) BranchRepositoryInterface {
	return &BranchRepository{storage: storage}
}

func scanBranch(row pgx.Row) (*entities.Branch, error) {
	var b entities.Branch
	err := row.Scan(&b.ID, &b.Name, &b.Address, &b.Phone, &b.WorkHours, &b.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования отделения: %w", err)
	}
	return &b, nil
}

// GetBranches возвращает только действующие отделения.
func (r *BranchRepository) GetBranches(ctx context.Context) ([]entities.Branch, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT id, name, address, phone, work_hours, is_active
		 FROM branches WHERE is_active = TRUE ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения отделений: %w", err)
	}
	defer rows.Close()

	branches := make([]entities.Branch, 0)
	for rows.Next() {
		branch, err := scanBranch(rows)
		if err != nil {
			return nil, err
		}
		branches = append(branches, *branch)
	}
	return branches, rows.Err()
}

func (r *BranchRepository) FindBranch(ctx context.Context, id uint64) (*entities.Branch, error) {
	return scanBranch(r.storage.QueryRow(ctx,
		`SELECT id, name, address, phone, work_hours, is_active FROM branches WHERE id = $1`, id))
}
