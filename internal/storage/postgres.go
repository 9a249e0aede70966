package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/cradle/cradle/internal/tracker/babies"
	"github.com/cradle/cradle/internal/tracker/sleep"
	"github.com/cradle/cradle/internal/tracker/users"
)

// Connect initializes the PostgreSQL database connection
func Connect(databaseURL string, maxConnections int) (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(databaseURL)))
	sqldb.SetMaxOpenConns(maxConnections)
	sqldb.SetMaxIdleConns(maxConnections / 2)
	sqldb.SetConnMaxLifetime(time.Hour)

	db := bun.NewDB(sqldb, pgdialect.New())
	return db, nil
}

// CreateTables creates all necessary tables for the tracker
func CreateTables(ctx context.Context, db *bun.DB) error {
	models := []interface{}{
		(*users.UserSchema)(nil),
		(*babies.Baby)(nil),
		(*sleep.SessionSchema)(nil),
	}

	for _, model := range models {
		_, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create table for model %T: %w", model, err)
		}
	}

	return nil
}

// CreateIndexes creates all necessary indexes for the tracker
func CreateIndexes(ctx context.Context, db *bun.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_babies_user_id ON babies (user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sleep_sessions_baby_id ON sleep_sessions (baby_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sleep_sessions_baby_date ON sleep_sessions (baby_id, date)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_sleep_sessions_active ON sleep_sessions (baby_id) WHERE is_active AND deleted_at IS NULL`,
	}

	for _, indexSQL := range indexes {
		_, err := db.ExecContext(ctx, indexSQL)
		if err != nil {
			return fmt.Errorf("failed to create index with SQL %q: %w", indexSQL, err)
		}
	}

	return nil
}
