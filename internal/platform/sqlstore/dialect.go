package sqlstore

import (
	"regexp"
	"strconv"
)

// Dialect captures the differences between the supported database
// backends. SQLite is the default for local use; Postgres is available
// for hosted deployments.
type Dialect interface {
	// DriverName returns the driver name for sql.Open.
	DriverName() string

	// DSN returns the data source name built from the config.
	DSN(cfg DialectConfig) string

	// RewriteQuery converts ? placeholders to the backend's syntax.
	RewriteQuery(query string) string

	// GooseDialect returns the dialect name goose expects.
	GooseDialect() string
}

// DialectConfig holds the connection settings a dialect can draw on.
type DialectConfig struct {
	// Path is the database file path (SQLite).
	Path string

	// URL is the connection URL (Postgres).
	URL string
}

var placeholderPattern = regexp.MustCompile(`\?`)

// rewriteToNumbered converts ? placeholders to $1, $2, etc.
func rewriteToNumbered(query string) string {
	n := 0
	return placeholderPattern.ReplaceAllStringFunc(query, func(string) string {
		n++
		return "$" + strconv.Itoa(n)
	})
}

// sqliteDialect targets mattn/go-sqlite3.
type sqliteDialect struct{}

// NewSQLiteDialect returns the SQLite dialect.
func NewSQLiteDialect() Dialect { return sqliteDialect{} }

func (sqliteDialect) DriverName() string { return "sqlite3" }

func (sqliteDialect) DSN(cfg DialectConfig) string {
	return cfg.Path + "?_foreign_keys=on"
}

func (sqliteDialect) RewriteQuery(query string) string { return query }

func (sqliteDialect) GooseDialect() string { return "sqlite3" }

// postgresDialect targets the pgx stdlib driver.
type postgresDialect struct{}

// NewPostgresDialect returns the Postgres dialect.
func NewPostgresDialect() Dialect { return postgresDialect{} }

func (postgresDialect) DriverName() string { return "pgx" }

func (postgresDialect) DSN(cfg DialectConfig) string { return cfg.URL }

func (postgresDialect) RewriteQuery(query string) string {
	return rewriteToNumbered(query)
}

func (postgresDialect) GooseDialect() string { return "postgres" }
