package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"card-system/pkg/config"
)

// SeedDictionaries наполняет справочники, не имеющие зависимостей:
// роли, статусы заявок, типы карт с шаблонами лимитов и отделения.
func SeedDictionaries(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Запуск наполнения справочников...")

	if err := seedRoles(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения ролей: %v", err)
	}
	if err := seedStatuses(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения статусов: %v", err)
	}
	if err := seedCardTypes(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения типов карт: %v", err)
	}
	if err := seedBranches(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения отделений: %v", err)
	}
	log.Println("✅ Наполнение справочников завершено!")
}

// SeedAdmin создаёт администратора. Зависит от справочника ролей.
func SeedAdmin(db *pgxpool.Pool, cfg *config.Config) {
	ctx := context.Background()
	log.Println("▶️  Запуск создания администратора...")

	if err := seedAdmin(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка создания администратора: %v", err)
	}
	log.Println("✅ Администратор создан!")
}

// SeedDemoData наполняет БД демонстрационными организациями и клиентами
// для локальной разработки.
func SeedDemoData(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Запуск наполнения демо-данными...")

	if err := seedDemoOrganizations(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения демо-данных: %v", err)
	}
	log.Println("✅ Демо-данные загружены!")
}
