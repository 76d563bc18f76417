// Package db is the SQLite-backed store for everything the engine
// persists: vocabulary entries, growth states, milestones, user facts,
// user memories and style profiles.
package db

import (
	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// Store wraps a SQLite connection. Schema is managed by goose migrations
// embedded in this package.
type Store struct {
	db     *sqlx.DB
	logger *log.Logger
}

// NewStore opens (or creates) the SQLite database at dbPath and runs all
// pending migrations.
func NewStore(dbPath string, logger *log.Logger) (*Store, error) {
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to SQLite")
	}

	// WAL mode for concurrent readers alongside the single writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, errors.Wrap(err, "enabling WAL mode")
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		return nil, errors.Wrap(err, "enabling foreign keys")
	}

	if err := RunMigrations(db.DB, logger); err != nil {
		return nil, errors.Wrap(err, "running migrations")
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
