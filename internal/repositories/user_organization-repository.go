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

type UserOrganizationRepositoryInterface interface {
	FindUserOrganization(ctx context.Context, id uint64) (*entities.UserOrganization, error)
	GetByOrganization(ctx context.Context, organizationID uint64) ([]entities.UserOrganization, error)
}

type UserOrganizationRepository struct {
	storage *pgxpool.Pool
}

func NewUserOrganizationRepository(storage *pgxpool.Pool) UserOrganizationRepositoryInterface {
	return &UserOrganizationRepository{storage: storage}
}

const userOrganizationQuery = `
	SELECT uo.id, uo.user_id, uo.organization_id, uo.position, uo.is_active,
	       uo.date_from, uo.date_to, uo.created_at,
	       u.first_name, u.last_name, u.middle_name, u.phone, u.email,
	       o.name
	FROM user_organizations uo
	JOIN users u ON uo.user_id = u.id
	JOIN organizations o ON uo.organization_id = o.id`

func scanUserOrganization(row pgx.Row) (*entities.UserOrganization, error) {
	var uo entities.UserOrganization
	var u entities.User
	var o entities.Organization

	err := row.Scan(
		&uo.ID, &uo.UserID, &uo.OrganizationID, &uo.Position, &uo.IsActive,
		&uo.DateFrom, &uo.DateTo, &uo.CreatedAt,
		&u.FirstName, &u.LastName, &u.MiddleName, &u.Phone, &u.Email,
		&o.Name,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования связи клиент-организация: %w", err)
	}

	u.ID = uo.UserID
	o.ID = uo.OrganizationID
	uo.User = &u
	uo.Organization = &o
	return &uo, nil
}

func (r *UserOrganizationRepository) FindUserOrganization(ctx context.Context, id uint64) (*entities.UserOrganization, error) {
	return scanUserOrganization(r.storage.QueryRow(ctx, userOrganizationQuery+` WHERE uo.id = $1`, id))
}

// GetByOrganization возвращает связи организации вместе с данными клиентов.
// Фильтрация по окну действия выполняется на уровне сервиса, дата «сегодня»
// принадлежит вызывающему.
func (r *UserOrganizationRepository) GetByOrganization(ctx context.Context, organizationID uint64) ([]entities.UserOrganization, error) {
	rows, err := r.storage.Query(ctx,
		userOrganizationQuery+` WHERE uo.organization_id = $1 ORDER BY u.last_name, u.first_name`,
		organizationID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения сотрудников организации: %w", err)
	}
	defer rows.Close()

	links := make([]entities.UserOrganization, 0)
	for rows.Next() {
		link, err := scanUserOrganization(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, *link)
	}
	return links, rows.Err()
}
