package main

import (
	"database/sql"
	"flag"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"card-system/pkg/config"
	"card-system/pkg/database/postgresql"
	"card-system/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 Миграции и наполнение БД                    ")
	log.Println("======================================================")

	runMigrate := flag.Bool("migrate", false, "Применить goose-миграции из каталога migrations/")
	runDicts := flag.Bool("dictionaries", false, "Наполнить справочники (роли, статусы, типы карт, отделения)")
	runAdmin := flag.Bool("admin", false, "Создать администратора (ADMIN_EMAIL / ADMIN_PASSWORD)")
	runDemo := flag.Bool("demo", false, "Загрузить демо-организации и клиентов")
	runAll := flag.Bool("all", false, "Выполнить всё: -migrate -dictionaries -admin -demo")

	flag.Parse()

	if !*runMigrate && !*runDicts && !*runAdmin && !*runDemo && !*runAll {
		log.Println("❌ Не выбрана ни одна операция.")
		log.Println("")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры:")
		log.Println("  go run ./seeders/cmd/seed -migrate -dictionaries -admin")
		log.Println("  go run ./seeders/cmd/seed -all")
		return
	}

	cfg := config.New()
	log.Println("📦 Используется DSN:", cfg.Postgres.DSN)

	if *runAll || *runMigrate {
		applyMigrations(cfg.Postgres.DSN)
		log.Println("======================================================")
	}

	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	if *runAll || *runDicts {
		seeders.SeedDictionaries(dbPool)
		log.Println("======================================================")
	}
	if *runAll || *runAdmin {
		// Администратор зависит от справочника ролей.
		seeders.SeedAdmin(dbPool, cfg)
		log.Println("======================================================")
	}
	if *runAll || *runDemo {
		seeders.SeedDemoData(dbPool)
		log.Println("======================================================")
	}

	log.Println("✅ Все указанные операции успешно завершены.")
}

func applyMigrations(dsn string) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("❌ Не удалось открыть соединение для миграций: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("❌ Ошибка настройки goose: %v", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("❌ Ошибка применения миграций: %v", err)
	}
	log.Println("✅ Миграции применены")
}
