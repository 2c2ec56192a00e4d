package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"card-system/internal/entities"
	"card-system/internal/infrastructure/db"
	"card-system/pkg/constants"
	apperrors "card-system/pkg/errors"
	"card-system/pkg/types"
)

type CardRequestRepositoryInterface interface {
	GetRequests(ctx context.Context, actor types.Actor, filter types.RequestFilter) ([]entities.CardRequest, error)
	FindRequest(ctx context.Context, id uint64) (*entities.CardRequest, error)
	FindByRequestNumber(ctx context.Context, number string) (*entities.CardRequest, error)
	LockRequestStatus(ctx context.Context, q Querier, id uint64) (uint64, error)
	CreateRequest(ctx context.Context, tx pgx.Tx, request entities.CardRequest) (uint64, error)
	UpdateRequest(ctx context.Context, tx pgx.Tx, id uint64, request entities.CardRequest) error
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uint64, statusID uint64) error
}

type CardRequestRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewCardRequestRepository(storage *pgxpool.Pool, logger *zap.Logger) CardRequestRepositoryInterface {
	return &CardRequestRepository{storage: storage, logger: logger}
}

// Колонки и джойны, общие для списка и поиска одной заявки.
var requestSelectColumns = []string{
	"cr.id", "cr.request_number", "cr.user_organization_id", "cr.card_type_id",
	"cr.branch_id", "cr.status_id", "cr.assigned_employee_id", "cr.comments",
	"cr.created_at", "cr.updated_at",
	"uo.position", "uo.user_id", "uo.organization_id",
	"u.first_name", "u.last_name", "u.middle_name",
	"o.name",
	"ct.type_name",
	"b.name",
	"s.code", "s.name",
	"e.id", "e.first_name", "e.last_name", "e.middle_name",
}

func requestBaseQuery() sq.SelectBuilder {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	return psql.Select(requestSelectColumns...).
		From("card_requests AS cr").
		Join("user_organizations uo ON cr.user_organization_id = uo.id").
		Join("users u ON uo.user_id = u.id").
		Join("organizations o ON uo.organization_id = o.id").
		Join("card_types ct ON cr.card_type_id = ct.id").
		Join("branches b ON cr.branch_id = b.id").
		Join("request_statuses s ON cr.status_id = s.id").
		LeftJoin("employees e ON cr.assigned_employee_id = e.id")
}

func scanRequest(row pgx.Row) (*entities.CardRequest, error) {
	var r entities.CardRequest
	var uo entities.UserOrganization
	var u entities.User
	var o entities.Organization
	var ct entities.CardType
	var b entities.Branch
	var s entities.RequestStatus
	var statusCode string

	var comments, userMiddleName sql.NullString
	var assignedEmployeeID sql.NullInt64
	var empID sql.NullInt64
	var empFirstName, empLastName, empMiddleName sql.NullString

	err := row.Scan(
		&r.ID, &r.RequestNumber, &r.UserOrganizationID, &r.CardTypeID,
		&r.BranchID, &r.StatusID, &assignedEmployeeID, &comments,
		&r.CreatedAt, &r.UpdatedAt,
		&uo.Position, &uo.UserID, &uo.OrganizationID,
		&u.FirstName, &u.LastName, &userMiddleName,
		&o.Name,
		&ct.TypeName,
		&b.Name,
		&statusCode, &s.Name,
		&empID, &empFirstName, &empLastName, &empMiddleName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования заявки: %w", err)
	}

	if comments.Valid {
		r.Comments = &comments.String
	}
	if userMiddleName.Valid {
		u.MiddleName = &userMiddleName.String
	}
	if assignedEmployeeID.Valid {
		id := uint64(assignedEmployeeID.Int64)
		r.AssignedEmployeeID = &id
	}

	u.ID = uo.UserID
	o.ID = uo.OrganizationID
	uo.ID = r.UserOrganizationID
	uo.User = &u
	uo.Organization = &o
	r.UserOrganization = &uo

	ct.ID = r.CardTypeID
	r.CardType = &ct

	b.ID = r.BranchID
	r.Branch = &b

	s.ID = r.StatusID
	s.Code = constants.StatusCode(statusCode)
	r.Status = &s

	if empID.Valid {
		emp := entities.Employee{
			ID:        uint64(empID.Int64),
			FirstName: empFirstName.String,
			LastName:  empLastName.String,
		}
		if empMiddleName.Valid {
			emp.MiddleName = &empMiddleName.String
		}
		r.AssignedEmployee = &emp
	}

	return &r, nil
}

// GetRequests возвращает заявки, подходящие под фильтр, с учётом
// видимости актора. Полный результат, без пагинации.
func (r *CardRequestRepository) GetRequests(ctx context.Context, actor types.Actor, filter types.RequestFilter) ([]entities.CardRequest, error) {
	builder := requestBaseQuery()
	builder = db.ApplyRequestFilter(builder, filter, actor)
	builder = db.ApplyRequestSort(builder, filter.SortBy, filter.SortDirection)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса списка заявок: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка заявок: %w", err)
	}
	defer rows.Close()

	requests := make([]entities.CardRequest, 0)
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *request)
	}
	return requests, rows.Err()
}

func (r *CardRequestRepository) findOne(ctx context.Context, where sq.Eq) (*entities.CardRequest, error) {
	query, args, err := requestBaseQuery().Where(where).ToSql()
	if err != nil {
		return nil, err
	}
	return scanRequest(r.storage.QueryRow(ctx, query, args...))
}

func (r *CardRequestRepository) FindRequest(ctx context.Context, id uint64) (*entities.CardRequest, error) {
	return r.findOne(ctx, sq.Eq{"cr.id": id})
}

func (r *CardRequestRepository) FindByRequestNumber(ctx context.Context, number string) (*entities.CardRequest, error) {
	return r.findOne(ctx, sq.Eq{"cr.request_number": number})
}

// LockRequestStatus читает текущий статус заявки с блокировкой строки.
// Внутри транзакции это исключает гонку двух параллельных смен статуса.
func (r *CardRequestRepository) LockRequestStatus(ctx context.Context, q Querier, id uint64) (uint64, error) {
	var statusID uint64
	err := q.QueryRow(ctx,
		`SELECT status_id FROM card_requests WHERE id = $1 FOR UPDATE`, id,
	).Scan(&statusID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, apperrors.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("ошибка блокировки заявки: %w", err)
	}
	return statusID, nil
}

func (r *CardRequestRepository) CreateRequest(ctx context.Context, tx pgx.Tx, request entities.CardRequest) (uint64, error) {
	query := `
		INSERT INTO card_requests
			(request_number, user_organization_id, card_type_id, branch_id, status_id, assigned_employee_id, comments, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id`

	var newID uint64
	err := tx.QueryRow(ctx, query,
		request.RequestNumber, request.UserOrganizationID, request.CardTypeID,
		request.BranchID, request.StatusID, request.AssignedEmployeeID, request.Comments,
	).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания заявки: %w", err)
	}
	return newID, nil
}

func (r *CardRequestRepository) UpdateRequest(ctx context.Context, tx pgx.Tx, id uint64, request entities.CardRequest) error {
	query := `
		UPDATE card_requests
		SET user_organization_id = $1, card_type_id = $2, branch_id = $3, comments = $4, updated_at = NOW()
		WHERE id = $5`

	result, err := tx.Exec(ctx, query,
		request.UserOrganizationID, request.CardTypeID, request.BranchID, request.Comments, id,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления заявки: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *CardRequestRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, id uint64, statusID uint64) error {
	result, err := tx.Exec(ctx,
		`UPDATE card_requests SET status_id = $1, updated_at = NOW() WHERE id = $2`,
		statusID, id,
	)
	if err != nil {
		return fmt.Errorf("ошибка смены статуса заявки: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
