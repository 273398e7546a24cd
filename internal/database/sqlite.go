package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/schooldesk/neis-dashboard/internal/config"
)

// NewSQLite opens (creating if absent) the local database file backing the
// assessments table. Concurrent writers are serialized by SQLite itself;
// the busy timeout keeps a second writer waiting instead of failing.
func NewSQLite(cfg config.DatabaseConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=%d&_foreign_keys=on", cfg.Path, cfg.BusyTimeout.Milliseconds())

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return db, nil
}
