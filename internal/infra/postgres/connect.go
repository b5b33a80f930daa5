package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/Evently-Event-Management/ms-event-seating/config"
)

func Connect(ctx context.Context, cfg config.PostgresConfig) (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN())))

	db := bun.NewDB(sqldb, pgdialect.New())

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping Postgres: %w", err)
	}

	log.Println("Connected to Postgres.")

	return db, nil
}

func Disconnect(db *bun.DB) {
	if db == nil {
		return
	}

	if err := db.Close(); err != nil {
		log.Printf("Error closing Postgres connection: %v\n", err)
		return
	}

	log.Println("Connection to Postgres closed.")
}
