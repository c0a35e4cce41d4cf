// Package database owns the PostgreSQL connection pool and schema
// lifecycle for Chronicle. Migrations are goose SQL files embedded at
// compile time, so a fresh binary brings an empty database up to the
// current schema on boot without any files on disk.
package database

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Pool limits for a read-heavy API in front of a single Postgres. List
// endpoints are mostly served from the Redis cache, so the pool stays small.
const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
)

//go:embed migrations
var migrationsFS embed.FS

// Connect opens a pgx-backed connection pool for the given DSN, applies
// the pool limits, and verifies the connection with a ping.
func Connect(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("database open: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping: %w", err)
	}

	slog.Info("postgres pool ready", "max_open_conns", maxOpenConns)
	return db, nil
}

// Migrate applies any pending migrations from the embedded directory.
// Safe to run on every boot; goose tracks applied versions in the
// goose_db_version table.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(migrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	slog.Info("schema migrations up to date")
	return nil
}
