package main

import (
	"context"
	"flag"
	"log"

	"hospital-meals/migrations"
	"hospital-meals/pkg/config"
	"hospital-meals/pkg/database/postgresql"
	applogger "hospital-meals/pkg/logger"
	"hospital-meals/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runUsers := flag.Bool("users", false, "Создать демо-пользователей всех ролей")
	runPatients := flag.Bool("patients", false, "Создать демо-пациентов")
	runMenu := flag.Bool("menu", false, "Заполнить меню по умолчанию")
	runOrders := flag.Bool("orders", false, "Создать примеры заказов")
	runAll := flag.Bool("all", false, "Запустить все сидеры")
	flag.Parse()

	if !*runUsers && !*runPatients && !*runMenu && !*runOrders && !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры использования:")
		log.Println("  go run ./seeders/cmd/seed -users")
		log.Println("  go run ./seeders/cmd/seed -all")
		return
	}

	ctx := context.Background()
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log.Level, "")

	dbPool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer dbPool.Close()

	if err := postgresql.Migrate(dbPool, migrations.FS, logger); err != nil {
		log.Fatalf("❌ %v", err)
	}

	steps := []struct {
		enabled bool
		name    string
		run     func(context.Context) error
	}{
		{*runAll || *runUsers, "Пользователи", func(ctx context.Context) error { return seeders.SeedUsers(ctx, dbPool) }},
		{*runAll || *runPatients, "Пациенты", func(ctx context.Context) error { return seeders.SeedPatients(ctx, dbPool) }},
		{*runAll || *runMenu, "Меню", func(ctx context.Context) error { return seeders.SeedMenu(ctx, dbPool) }},
		{*runAll || *runOrders, "Заказы", func(ctx context.Context) error { return seeders.SeedSampleOrders(ctx, dbPool) }},
	}
	for _, step := range steps {
		if !step.enabled {
			continue
		}
		if err := step.run(ctx); err != nil {
			log.Fatalf("❌ Ошибка сидера %q: %v", step.name, err)
		}
	}

	log.Println("✅ Наполнение завершено!")
}
