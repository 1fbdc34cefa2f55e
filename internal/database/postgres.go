package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"justforkidz/siteapi/internal/config"
)

func NewPostgresPool(ctx context.Context, cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpen)
	poolConfig.MinConns = int32(cfg.MaxIdle)
	poolConfig.MaxConnLifetime = cfg.ConnMaxLifetime
	poolConfig.HealthCheckPeriod = 30 * time.Second

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("pgxpool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	return pool, nil
}

// EnsureSchema creates the leads and gallery_images tables when they do
// not exist yet. ids are assigned by the application (ksuid), created_at
// by the database.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS leads (
			id               text PRIMARY KEY,
			parent_name      text,
			email            text,
			phone            text,
			child_name       text,
			program_interest text,
			message          text,
			page_url         text,
			referrer         text,
			user_agent       text,
			timezone         text,
			status           text NOT NULL DEFAULT 'new',
			created_at       timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS leads_created_at_idx ON leads (created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS leads_status_idx ON leads (status)`,
		`CREATE TABLE IF NOT EXISTS gallery_images (
			id          text PRIMARY KEY,
			title       text NOT NULL,
			description text,
			url         text NOT NULL,
			created_at  timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS gallery_images_created_at_idx ON gallery_images (created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
