package main

import (
	"context"
	"log"
	"time"

	"jobsync/internal/config"
	"jobsync/internal/database/migration"
	dbpostgres "jobsync/internal/database/postgres"
	"jobsync/internal/database/seeder"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := migration.NewRunner().Run(ctx, db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	r := seeder.Runner{Seeders: seeder.Defaults()}
	if err := r.Run(ctx, db); err != nil {
		log.Fatalf("seed failed: %v", err)
	}

	log.Println("seed complete")
}
