// Package sqlstore implements the session store over database/sql with a
// SQLite or Postgres backend. Schema changes run through embedded goose
// migrations at open time.
package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB wraps a database connection with its dialect so queries can be
// written once with ? placeholders.
type DB struct {
	*sql.DB
	dialect Dialect
}

// Open connects to the configured backend, verifies the connection, and
// applies pending migrations. Supported types: "sqlite" (default) and
// "postgres".
func Open(databaseType string, cfg DialectConfig) (*DB, error) {
	var dialect Dialect
	switch strings.ToLower(databaseType) {
	case "postgres", "postgresql":
		dialect = NewPostgresDialect()
	case "sqlite", "sqlite3", "":
		dialect = NewSQLiteDialect()
	default:
		return nil, fmt.Errorf("unsupported database type: %s", databaseType)
	}

	db, err := sql.Open(dialect.DriverName(), dialect.DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrate(db, dialect); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &DB{DB: db, dialect: dialect}, nil
}

func migrate(db *sql.DB, dialect Dialect) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect(dialect.GooseDialect()); err != nil {
		return err
	}
	return goose.Up(db, "migrations")
}

// QueryContext executes a query with automatic placeholder rewriting.
func (db *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return db.DB.QueryContext(ctx, db.dialect.RewriteQuery(query), args...)
}

// QueryRowContext executes a single-row query with automatic placeholder
// rewriting.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return db.DB.QueryRowContext(ctx, db.dialect.RewriteQuery(query), args...)
}

// ExecContext executes a statement with automatic placeholder rewriting.
func (db *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return db.DB.ExecContext(ctx, db.dialect.RewriteQuery(query), args...)
}
