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

type RoleRepositoryInterface interface {
	FindRole(ctx context.Context, id uint64) (*entities.Role, error)
	FindRoleByCode(ctx context.Context, code constants.RoleCode) (*entities.Role, error)
}

type RoleRepository struct {
	storage *pgxpool.Pool
}

func NewRoleRepository(storage *pgxpool.Pool) RoleRepositoryInterface {
	return &RoleRepository{storage: storage}
}

func scanRole(row pgx.Row) (*entities.Role, error) {
	var role entities.Role
	var roleCode string
	err := row.Scan(&role.ID, &roleCode, &role.Name, &role.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска роли: %w", err)
	}
	role.Code = constants.RoleCode(roleCode)
	return &role, nil
}

func (r *RoleRepository) FindRole(ctx context.Context, id uint64) (*entities.Role, error) {
	return scanRole(r.storage.QueryRow(ctx,
		`SELECT id, code, name, description FROM roles WHERE id = $1`, id))
}

func (r *RoleRepository) FindRoleByCode(ctx context.Context, code constants.RoleCode) (*entities.Role, error) {
	return scanRole(r.storage.QueryRow(ctx,
		`SELECT id, code, name, description FROM roles WHERE code = $1`, string(code)))
}
