package seeders

import (
	"context"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"card-system/pkg/constants"
	"card-system/pkg/utils"
)

// seedAdmin создаёт единственного администратора системы. Через HTTP
// администраторов создать нельзя, поэтому сидер — единственный путь.
func seedAdmin(ctx context.Context, db *pgxpool.Pool) error {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@card-system.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
		log.Println("   ⚠️  ADMIN_PASSWORD не задан, используется пароль по умолчанию")
	}

	var exists bool
	if err := db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM employees WHERE email = $1)`, email,
	).Scan(&exists); err != nil {
		return err
	}
	if exists {
		log.Printf("   - Администратор %s уже существует, пропуск", email)
		return nil
	}

	var roleID uint64
	if err := db.QueryRow(ctx,
		`SELECT id FROM roles WHERE code = $1`, string(constants.RoleAdmin),
	).Scan(&roleID); err != nil {
		return err
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = db.Exec(ctx,
		`INSERT INTO employees (role_id, first_name, last_name, email, phone, password_hash, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, TRUE)`,
		roleID, "Системный", "Администратор", email, "+70000000000", passwordHash)
	if err != nil {
		return err
	}

	log.Printf("   - Администратор создан: %s", email)
	return nil
}
