package seeders

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// seedDemoOrganizations создаёт пару организаций с сотрудниками и
// действующими связями. Только для локальной разработки.
func seedDemoOrganizations(ctx context.Context, db *pgxpool.Pool) error {
	organizations := []struct {
		Name, INN, LegalAddress, Phone, Email, Director string
	}{
		{"ООО «Вектор»", "7701234567", "г. Москва, ул. Ленина, д. 10", "+74951112233", "info@vektor.example", "Петров Пётр Петрович"},
		{"АО «Прогресс»", "7707654321", "г. Москва, пр. Мира, д. 25", "+74954445566", "office@progress.example", "Сидорова Анна Ивановна"},
	}

	users := []struct {
		FirstName, LastName, MiddleName            string
		PassportSeries, PassportNumber, Phone, Pos string
		OrgIdx                                     int
	}{
		{"Иван", "Кузнецов", "Сергеевич", "4510", "123456", "+79160000001", "Инженер", 0},
		{"Мария", "Соколова", "Андреевна", "4511", "234567", "+79160000002", "Бухгалтер", 0},
		{"Алексей", "Морозов", "Дмитриевич", "4512", "345678", "+79160000003", "Менеджер по продажам", 1},
	}

	orgIDs := make([]uint64, len(organizations))
	for i, o := range organizations {
		err := db.QueryRow(ctx,
			`INSERT INTO organizations (name, inn, legal_address, phone, email, director_name, is_active)
			 VALUES ($1, $2, $3, $4, $5, $6, TRUE)
			 ON CONFLICT (inn) DO UPDATE SET name = EXCLUDED.name
			 RETURNING id`,
			o.Name, o.INN, o.LegalAddress, o.Phone, o.Email, o.Director,
		).Scan(&orgIDs[i])
		if err != nil {
			return err
		}
	}

	issueDate := time.Date(2015, time.June, 1, 0, 0, 0, 0, time.UTC)
	birthDate := time.Date(1990, time.March, 15, 0, 0, 0, 0, time.UTC)
	for _, u := range users {
		var userID uint64
		err := db.QueryRow(ctx,
			`INSERT INTO users (first_name, last_name, middle_name, passport_series, passport_number,
			                    passport_issued_by, passport_issue_date, birth_date, phone)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 ON CONFLICT (passport_series, passport_number) DO UPDATE SET phone = EXCLUDED.phone
			 RETURNING id`,
			u.FirstName, u.LastName, u.MiddleName, u.PassportSeries, u.PassportNumber,
			"ОВД района Демо", issueDate, birthDate, u.Phone,
		).Scan(&userID)
		if err != nil {
			return err
		}

		var linkExists bool
		if err := db.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM user_organizations WHERE user_id = $1 AND organization_id = $2)`,
			userID, orgIDs[u.OrgIdx],
		).Scan(&linkExists); err != nil {
			return err
		}
		if linkExists {
			continue
		}

		_, err = db.Exec(ctx,
			`INSERT INTO user_organizations (user_id, organization_id, position, is_active, date_from)
			 VALUES ($1, $2, $3, TRUE, $4)`,
			userID, orgIDs[u.OrgIdx], u.Pos, time.Date(2023, time.January, 9, 0, 0, 0, 0, time.UTC))
		if err != nil {
			return err
		}
	}

	log.Printf("   - Организации: %d, клиенты: %d", len(organizations), len(users))
	return nil
}
