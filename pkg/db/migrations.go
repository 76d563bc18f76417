package db

import (
	"database/sql"
	"embed"
	logstd "log"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// RunMigrations applies all pending migrations.
func RunMigrations(db *sql.DB, logger *log.Logger) error {
	goose.SetLogger(logstd.New(os.Stderr, "", 0))
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return errors.Wrap(err, "setting goose dialect")
	}

	if err := goose.Up(db, "migrations"); err != nil {
		logger.Error("Database migrations failed", "error", err)
		return err
	}
	logger.Debug("Database migrations up to date")
	return nil
}
