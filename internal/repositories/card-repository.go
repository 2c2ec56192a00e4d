package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"card-system/internal/entities"
	apperrors "card-system/pkg/errors"
	"card-system/pkg/types"
)

type CardRepositoryInterface interface {
	GetCards(ctx context.Context, actor types.Actor) ([]entities.Card, error)
	FindCard(ctx context.Context, id uint64) (*entities.Card, error)
	FindCardByRequest(ctx context.Context, requestID uint64) (*entities.Card, error)
	CreateCard(ctx context.Context, tx pgx.Tx, card entities.Card) (uint64, error)
	CreateCardLimit(ctx context.Context, tx pgx.Tx, limit entities.CardLimit) error
}

type CardRepository struct {
	storage *pgxpool.Pool
}

func NewCardRepository(storage *pgxpool.Pool) CardRepositoryInterface {
	return &CardRepository{storage: storage}
}

func cardBaseQuery() sq.SelectBuilder {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	return psql.Select(
		"c.id", "c.request_id", "c.card_number", "c.expires_at", "c.is_active", "c.created_at",
		"cr.request_number", "cr.assigned_employee_id",
		"uo.user_id", "u.first_name", "u.last_name", "u.middle_name",
		"l.id", "l.daily_limit", "l.monthly_limit", "l.single_op_limit", "l.updated_at",
	).
		From("cards AS c").
		Join("card_requests cr ON c.request_id = cr.id").
		Join("user_organizations uo ON cr.user_organization_id = uo.id").
		Join("users u ON uo.user_id = u.id").
		LeftJoin("card_limits l ON l.card_id = c.id")
}

func scanCard(row pgx.Row) (*entities.Card, error) {
	var c entities.Card
	var request entities.CardRequest
	var user entities.User
	var assignedEmployeeID sql.NullInt64
	var userMiddleName sql.NullString
	var limitID sql.NullInt64
	var daily, monthly, singleOp sql.NullString
	var limitUpdatedAt sql.NullTime

	err := row.Scan(
		&c.ID, &c.RequestID, &c.CardNumber, &c.ExpiresAt, &c.IsActive, &c.CreatedAt,
		&request.RequestNumber, &assignedEmployeeID,
		&user.ID, &user.FirstName, &user.LastName, &userMiddleName,
		&limitID, &daily, &monthly, &singleOp, &limitUpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования карты: %w", err)
	}

	if userMiddleName.Valid {
		user.MiddleName = &userMiddleName.String
	}
	if assignedEmployeeID.Valid {
		id := uint64(assignedEmployeeID.Int64)
		request.AssignedEmployeeID = &id
	}

	request.ID = c.RequestID
	request.UserOrganization = &entities.UserOrganization{UserID: user.ID, User: &user}
	c.Request = &request

	if limitID.Valid {
		c.Limit = &entities.CardLimit{
			ID:            uint64(limitID.Int64),
			CardID:        c.ID,
			DailyLimit:    daily.String,
			MonthlyLimit:  monthly.String,
			SingleOpLimit: singleOp.String,
			UpdatedAt:     limitUpdatedAt.Time,
		}
	}
	return &c, nil
}

// GetCards возвращает карты по заявкам, видимым актору. Менеджер видит
// только карты по своим заявкам.
func (r *CardRepository) GetCards(ctx context.Context, actor types.Actor) ([]entities.Card, error) {
	builder := cardBaseQuery()
	if !actor.IsAdmin() {
		builder = builder.Where(sq.Eq{"cr.assigned_employee_id": actor.ID})
	}
	query, args, err := builder.OrderBy("c.created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса списка карт: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка карт: %w", err)
	}
	defer rows.Close()

	cards := make([]entities.Card, 0)
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *card)
	}
	return cards, rows.Err()
}

func (r *CardRepository) FindCard(ctx context.Context, id uint64) (*entities.Card, error) {
	query, args, err := cardBaseQuery().Where(sq.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanCard(r.storage.QueryRow(ctx, query, args...))
}

func (r *CardRepository) FindCardByRequest(ctx context.Context, requestID uint64) (*entities.Card, error) {
	query, args, err := cardBaseQuery().Where(sq.Eq{"c.request_id": requestID}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanCard(r.storage.QueryRow(ctx, query, args...))
}

func (r *CardRepository) CreateCard(ctx context.Context, tx pgx.Tx, card entities.Card) (uint64, error) {
	var newID uint64
	err := tx.QueryRow(ctx,
		`INSERT INTO cards (request_id, card_number, expires_at, is_active, created_at)
		 VALUES ($1, $2, $3, $4, NOW())
		 RETURNING id`,
		card.RequestID, card.CardNumber, card.ExpiresAt, card.IsActive,
	).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания карты: %w", err)
	}
	return newID, nil
}

func (r *CardRepository) CreateCardLimit(ctx context.Context, tx pgx.Tx, limit entities.CardLimit) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO card_limits (card_id, daily_limit, monthly_limit, single_op_limit, updated_at)
		 VALUES ($1, $2, $3, $4, NOW())`,
		limit.CardID, limit.DailyLimit, limit.MonthlyLimit, limit.SingleOpLimit,
	)
	if err != nil {
		return fmt.Errorf("ошибка создания лимитов карты: %w", err)
	}
	return nil
}
