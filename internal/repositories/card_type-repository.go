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

type CardTypeRepositoryInterface interface {
	GetCardTypes(ctx context.Context) ([]entities.CardType, error)
	FindCardType(ctx context.Context, id uint64) (*entities.CardType, error)
	FindDefaultLimitTemplate(ctx context.Context, cardTypeID uint64) (*entities.CardTypeLimitTemplate, error)
}

type CardTypeRepository struct {
	storage *pgxpool.Pool
}

func NewCardTypeRepository(storage *pgxpool.Pool) CardTypeRepositoryInterface {
	return &CardTypeRepository{storage: storage}
}

func scanCardType(row pgx.Row) (*entities.CardType, error) {
	var ct entities.CardType
	err := row.Scan(&ct.ID, &ct.TypeName, &ct.Description, &ct.AnnualFee, &ct.Currency)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования типа карты: %w", err)
	}
	return &ct, nil
}

func (r *CardTypeRepository) GetCardTypes(ctx context.Context) ([]entities.CardType, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT id, type_name, description, annual_fee, currency FROM card_types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения типов карт: %w", err)
	}
	defer rows.Close()

	cardTypes := make([]entities.CardType, 0)
	for rows.Next() {
		cardType, err := scanCardType(rows)
		if err != nil {
			return nil, err
		}
		cardTypes = append(cardTypes, *cardType)
	}
	return cardTypes, rows.Err()
}

func (r *CardTypeRepository) FindCardType(ctx context.Context, id uint64) (*entities.CardType, error) {
	return scanCardType(r.storage.QueryRow(ctx,
		`SELECT id, type_name, description, annual_fee, currency FROM card_types WHERE id = $1`, id))
}

// FindDefaultLimitTemplate возвращает шаблон лимитов по умолчанию для
// типа карты. Применяется при выпуске карты.
func (r *CardTypeRepository) FindDefaultLimitTemplate(ctx context.Context, cardTypeID uint64) (*entities.CardTypeLimitTemplate, error) {
	var t entities.CardTypeLimitTemplate
	err := r.storage.QueryRow(ctx,
		`SELECT id, card_type_id, daily_limit, monthly_limit, single_op_limit, is_default
		 FROM card_type_limit_templates
		 WHERE card_type_id = $1 AND is_default = TRUE`, cardTypeID,
	).Scan(&t.ID, &t.CardTypeID, &t.DailyLimit, &t.MonthlyLimit, &t.SingleOpLimit, &t.IsDefault)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска шаблона лимитов: %w", err)
	}
	return &t, nil
}
