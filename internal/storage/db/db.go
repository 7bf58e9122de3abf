// Package db persists images, categories and their associations through
// database/sql. Both the SQLite (default, single file) and PostgreSQL drivers
// are supported with the same queries.
//
// Queries use $N placeholders, which lib/pq and go-sqlite3 both accept.
// go-sqlite3 binds them by first appearance, so every query must introduce
// its placeholders in ascending order ($1 before $2, and so on).
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mindseye-dev/portfolio/internal/config"
	"github.com/mindseye-dev/portfolio/internal/logger"
)

// Querier is satisfied by both *sql.DB and *sql.Tx so the same helpers run
// on the pool or inside a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ConnectionConfig holds database connection pool settings.
type ConnectionConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConnectionConfig returns pool settings for a PostgreSQL server.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 1 * time.Minute,
	}
}

// SQLiteConnectionConfig serializes access through a single connection.
// SQLite allows one writer at a time and a single connection avoids
// "database is locked" errors under concurrent requests.
func SQLiteConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}
}

type Storage struct {
	db      *sql.DB
	dialect dialect
}

// New opens the configured database and applies the schema.
func New(ctx context.Context, cfg *config.Config) (*Storage, error) {
	var (
		d       dialect
		dsn     string
		connCfg ConnectionConfig
	)
	switch cfg.Public.Storage.Driver {
	case config.DriverPostgres:
		d = postgresDialect
		pg := cfg.Private.Pg
		dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			pg.Host, pg.Port, pg.User, pg.Password, pg.Dbname)
		connCfg = DefaultConnectionConfig()
	case config.DriverSQLite:
		d = sqliteDialect
		if err := ensureParentDir(cfg.Public.Storage.SqlitePath); err != nil {
			return nil, err
		}
		dsn = sqliteDSN(cfg.Public.Storage.SqlitePath)
		connCfg = SQLiteConnectionConfig()
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Public.Storage.Driver)
	}

	logger.Log.Info("connecting to database", "driver", d.name)
	db, err := Connect(d.driverName, dsn, connCfg)
	if err != nil {
		return nil, err
	}

	s := &Storage{db: db, dialect: d}
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	logger.Log.Info("database ready", "driver", d.name)
	return s, nil
}

// Connect opens a pool and verifies it with a ping.
func Connect(driverName, dsn string, connCfg ConnectionConfig) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(connCfg.MaxOpenConns)
	db.SetMaxIdleConns(connCfg.MaxIdleConns)
	db.SetConnMaxLifetime(connCfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(connCfg.ConnMaxIdleTime)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Migrate creates missing tables. It is safe to run on every start.
func (s *Storage) Migrate(ctx context.Context) error {
	schema, err := migrations.ReadFile(s.dialect.schemaFile)
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, string(schema)); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

// Ping reports whether the database is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// WithTx executes fn within a transaction. A returned error rolls back,
// otherwise the transaction is committed.
func WithTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // No-op if transaction is already committed

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Storage) withTx(ctx context.Context, fn func(q Querier) error) error {
	return WithTx(ctx, s.db, func(tx *sql.Tx) error { return fn(tx) })
}

func sqliteDSN(path string) string {
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create database directory %s: %w", dir, err)
	}
	return nil
}

// now is rounded to microseconds, the precision both databases keep.
func now() time.Time {
	return time.Now().UTC().Round(time.Microsecond)
}

// argList accumulates positional arguments and hands out their placeholders.
type argList struct {
	args []any
}

func (a *argList) add(v any) string {
	a.args = append(a.args, v)
	return fmt.Sprintf("$%d", len(a.args))
}

func (a *argList) addAll(vs []int64) string {
	ph := make([]string, len(vs))
	for i, v := range vs {
		ph[i] = a.add(v)
	}
	return strings.Join(ph, ", ")
}
