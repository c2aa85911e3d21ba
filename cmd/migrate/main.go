package main

// Run database migrations:
//   go run ./cmd/migrate

import (
	"context"
	"log"

	"resume-optimizer/internal/shared/config"
	"resume-optimizer/internal/shared/storage/db"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		log.Fatalf("run migrations: %v", err)
	}
	log.Println("migrations applied")
}
