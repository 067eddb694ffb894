package main

import (
	"context"
	"log"
	"os"

	"github.com/guedes-jr/delizandra-storefront/internal/config"
	"github.com/guedes-jr/delizandra-storefront/internal/migrate"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := log.New(os.Stdout, "[migrate] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	if cfg.DBConnString == "" {
		logger.Fatal("DB_DSN is required to run migrations")
	}

	if err := migrate.Apply(context.Background(), cfg.DBConnString); err != nil {
		logger.Fatalf("apply migrations: %v", err)
	}

	logger.Println("migrations applied")
}
