package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLStore is a database/sql backed store. It creates its table on first use:
//
//	CREATE TABLE IF NOT EXISTS appstore_kv (
//	    pref_key   VARCHAR(255) PRIMARY KEY,
//	    pref_value TEXT NOT NULL,
//	    updated_at TIMESTAMP NOT NULL
//	);
type SQLStore struct {
	db        *sql.DB
	tableName string
	dialect   SQLDialect
	ownsDB    bool

	mu     sync.RWMutex
	closed bool
}

// SQLDialect represents the SQL dialect for query generation.
type SQLDialect int

const (
	// DialectSQLite uses SQLite syntax (? placeholders, ON CONFLICT upsert).
	DialectSQLite SQLDialect = iota
	// DialectPostgreSQL uses PostgreSQL syntax ($1, $2 placeholders).
	DialectPostgreSQL
	// DialectMySQL uses MySQL syntax (? placeholders, ON DUPLICATE KEY upsert).
	DialectMySQL
)

// SQLStoreOption configures SQLStore behavior.
type SQLStoreOption func(*sqlStoreConfig)

type sqlStoreConfig struct {
	tableName string
	dialect   SQLDialect
}

// WithSQLTableName sets the table name.
// Default: "appstore_kv".
func WithSQLTableName(name string) SQLStoreOption {
	return func(c *sqlStoreConfig) {
		c.tableName = name
	}
}

// WithSQLDialect sets the SQL dialect for query generation.
// Default: DialectSQLite.
func WithSQLDialect(dialect SQLDialect) SQLStoreOption {
	return func(c *sqlStoreConfig) {
		c.dialect = dialect
	}
}

// NewSQLStore wraps db and ensures the table exists. The caller keeps
// ownership of db.
func NewSQLStore(ctx context.Context, db *sql.DB, opts ...SQLStoreOption) (*SQLStore, error) {
	cfg := &sqlStoreConfig{
		tableName: "appstore_kv",
		dialect:   DialectSQLite,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	s := &SQLStore{
		db:        db,
		tableName: cfg.tableName,
		dialect:   cfg.dialect,
	}
	if err := s.migrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// OpenSQLite opens a SQLite database at path with the pure-Go driver and
// returns a store that closes the database on Close.
func OpenSQLite(ctx context.Context, path string, opts ...SQLStoreOption) (*SQLStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// A single connection keeps writes serialized for SQLite.
	db.SetMaxOpenConns(1)

	opts = append([]SQLStoreOption{WithSQLDialect(DialectSQLite)}, opts...)
	s, err := NewSQLStore(ctx, db, opts...)
	if err != nil {
		db.Close()
		return nil, err
	}
	s.ownsDB = true
	return s, nil
}

func (s *SQLStore) migrate(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		pref_key VARCHAR(255) PRIMARY KEY,
		pref_value TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`, s.tableName)
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create table %s: %w", s.tableName, err)
	}
	return nil
}

// placeholder returns the placeholder syntax for the dialect.
func (s *SQLStore) placeholder(n int) string {
	if s.dialect == DialectPostgreSQL {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Get returns the value stored under key.
func (s *SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.isClosed() {
		return "", false, ErrStoreClosed{}
	}

	query := fmt.Sprintf(`SELECT pref_value FROM %s WHERE pref_key = %s`, s.tableName, s.placeholder(1))

	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores value under key.
func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	if s.isClosed() {
		return ErrStoreClosed{}
	}

	var query string
	switch s.dialect {
	case DialectMySQL:
		query = fmt.Sprintf(`
			INSERT INTO %s (pref_key, pref_value, updated_at)
			VALUES (?, ?, ?)
			ON DUPLICATE KEY UPDATE pref_value = VALUES(pref_value), updated_at = VALUES(updated_at)
		`, s.tableName)
	default:
		query = fmt.Sprintf(`
			INSERT INTO %s (pref_key, pref_value, updated_at)
			VALUES (%s, %s, %s)
			ON CONFLICT (pref_key) DO UPDATE SET pref_value = excluded.pref_value, updated_at = excluded.updated_at
		`, s.tableName, s.placeholder(1), s.placeholder(2), s.placeholder(3))
	}

	_, err := s.db.ExecContext(ctx, query, key, value, time.Now().UTC())
	return err
}

// Delete removes key.
func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if s.isClosed() {
		return ErrStoreClosed{}
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE pref_key = %s`, s.tableName, s.placeholder(1))
	_, err := s.db.ExecContext(ctx, query, key)
	return err
}

// Close marks the store as closed, closing the database if the store opened it.
func (s *SQLStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if s.ownsDB {
		return s.db.Close()
	}
	return nil
}

func (s *SQLStore) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}
