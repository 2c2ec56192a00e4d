package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"card-system/pkg/constants"
)

func seedRoles(ctx context.Context, db *pgxpool.Pool) error {
	roles := []struct {
		Code        constants.RoleCode
		Description string
	}{
		{constants.RoleAdmin, "Полный доступ: все заявки, управление менеджерами"},
		{constants.RoleManager, "Работа с собственными заявками"},
	}

	for _, r := range roles {
		_, err := db.Exec(ctx,
			`INSERT INTO roles (code, name, description)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (code) DO NOTHING`,
			string(r.Code), r.Code.DisplayName(), r.Description)
		if err != nil {
			return err
		}
	}
	log.Printf("   - Роли: %d", len(roles))
	return nil
}

func seedStatuses(ctx context.Context, db *pgxpool.Pool) error {
	statuses := []constants.StatusCode{
		constants.StatusNew,
		constants.StatusInReview,
		constants.StatusApproved,
		constants.StatusRejected,
		constants.StatusIssued,
	}

	for _, code := range statuses {
		_, err := db.Exec(ctx,
			`INSERT INTO request_statuses (code, name)
			 VALUES ($1, $2)
			 ON CONFLICT (code) DO NOTHING`,
			string(code), code.DisplayName())
		if err != nil {
			return err
		}
	}
	log.Printf("   - Статусы заявок: %d", len(statuses))
	return nil
}

func seedCardTypes(ctx context.Context, db *pgxpool.Pool) error {
	cardTypes := []struct {
		TypeName      string
		Description   string
		AnnualFee     string
		Currency      string
		DailyLimit    string
		MonthlyLimit  string
		SingleOpLimit string
	}{
		{"Зарплатная", "Стандартная зарплатная карта", "0.00", "RUB", "150000.00", "1500000.00", "100000.00"},
		{"Премиальная", "Карта с расширенными лимитами", "4900.00", "RUB", "500000.00", "5000000.00", "300000.00"},
		{"Корпоративная", "Карта для представительских расходов", "1900.00", "RUB", "300000.00", "3000000.00", "200000.00"},
	}

	for _, ct := range cardTypes {
		var cardTypeID uint64
		err := db.QueryRow(ctx,
			`INSERT INTO card_types (type_name, description, annual_fee, currency)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (type_name) DO UPDATE SET description = EXCLUDED.description
			 RETURNING id`,
			ct.TypeName, ct.Description, ct.AnnualFee, ct.Currency,
		).Scan(&cardTypeID)
		if err != nil {
			return err
		}

		_, err = db.Exec(ctx,
			`INSERT INTO card_type_limit_templates (card_type_id, daily_limit, monthly_limit, single_op_limit, is_default)
			 VALUES ($1, $2, $3, $4, TRUE)
			 ON CONFLICT (card_type_id) WHERE is_default DO NOTHING`,
			cardTypeID, ct.DailyLimit, ct.MonthlyLimit, ct.SingleOpLimit)
		if err != nil {
			return err
		}
	}
	log.Printf("   - Типы карт и шаблоны лимитов: %d", len(cardTypes))
	return nil
}

func seedBranches(ctx context.Context, db *pgxpool.Pool) error {
	branches := []struct {
		Name, Address, Phone, WorkHours string
	}{
		{"Центральное отделение", "г. Москва, ул. Тверская, д. 1", "+74950000001", "Пн-Пт 09:00-20:00"},
		{"Отделение «Север»", "г. Москва, Дмитровское ш., д. 89", "+74950000002", "Пн-Пт 09:00-18:00"},
		{"Отделение «Юг»", "г. Москва, Варшавское ш., д. 42", "+74950000003", "Пн-Сб 10:00-19:00"},
	}

	for _, b := range branches {
		var exists bool
		if err := db.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM branches WHERE name = $1)`, b.Name,
		).Scan(&exists); err != nil {
			return err
		}
		if exists {
			continue
		}
		_, err := db.Exec(ctx,
			`INSERT INTO branches (name, address, phone, work_hours, is_active)
			 VALUES ($1, $2, $3, $4, TRUE)`,
			b.Name, b.Address, b.Phone, b.WorkHours)
		if err != nil {
			return err
		}
	}
	log.Printf("   - Отделения: %d", len(branches))
	return nil
}
