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

type OrganizationRepositoryInterface interface {
	GetOrganizations(ctx context.Context) ([]entities.Organization, error)
	FindOrganization(ctx context.Context, id uint64) (*entities.Organization, error)
}

type OrganizationRepository struct {
	storage *pgxpool.Pool
}

func NewOrganizationRepository(storage *pgxpool.Pool) OrganizationRepositoryInterface {
	return &OrganizationRepository{storage: storage}
}

func scanOrganization(row pgx.Row) (*entities.Organization, error) {
	var o entities.Organization
	err := row.Scan(
		&o.ID, &o.Name, &o.INN, &o.KPP, &o.LegalAddress, &o.ActualAddress,
		&o.Phone, &o.Email, &o.DirectorName, &o.IsActive, &o.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования организации: %w", err)
	}
	return &o, nil
}

const organizationColumns = `id, name, inn, kpp, legal_address, actual_address, phone, email, director_name, is_active, created_at`

func (r *OrganizationRepository) GetOrganizations(ctx context.Context) ([]entities.Organization, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT `+organizationColumns+` FROM organizations WHERE is_active = TRUE ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения организаций: %w", err)
	}
	defer rows.Close()

	organizations := make([]entities.Organization, 0)
	for rows.Next() {
		organization, err := scanOrganization(rows)
		if err != nil {
			return nil, err
		}
		organizations = append(organizations, *organization)
	}
	return organizations, rows.Err()
}

func (r *OrganizationRepository) FindOrganization(ctx context.Context, id uint64) (*entities.Organization, error) {
	return scanOrganization(r.storage.QueryRow(ctx,
		`SELECT `+organizationColumns+` FROM organizations WHERE id = $1`, id))
}
