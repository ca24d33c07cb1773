// Package storage provides the sqlite-backed collaborators the decision
// engine reads from: analysis watermarks and depth counts, check-in data
// points, and engagement context snapshots. It stands in for the hosted
// persistence layer when running locally.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the database connection.
type DB struct {
	*sqlx.DB
	path string
}

// Open opens or creates the database at path and runs migrations.
func Open(path string) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sqlx.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	d := &DB{DB: db, path: path}
	if err := d.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return d, nil
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.path
}

func (d *DB) migrate() error {
	migrations := []string{
		migrationAnalyses,
		migrationCheckins,
		migrationEngagement,
		migrationIndexes,
	}

	for _, m := range migrations {
		if _, err := d.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

const migrationAnalyses = `
CREATE TABLE IF NOT EXISTS analyses (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    archetype TEXT NOT NULL,
    analysis_type TEXT NOT NULL,
    completed_at TIMESTAMP NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

const migrationCheckins = `
CREATE TABLE IF NOT EXISTS checkins (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    kind TEXT NOT NULL,
    note TEXT,
    recorded_at TIMESTAMP NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

const migrationEngagement = `
CREATE TABLE IF NOT EXISTS engagement_context (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    payload TEXT NOT NULL,
    captured_at TIMESTAMP NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

const migrationIndexes = `
CREATE INDEX IF NOT EXISTS idx_analyses_user ON analyses(user_id, completed_at);
CREATE INDEX IF NOT EXISTS idx_analyses_user_archetype ON analyses(user_id, archetype, completed_at);
CREATE INDEX IF NOT EXISTS idx_checkins_user ON checkins(user_id, recorded_at);
CREATE INDEX IF NOT EXISTS idx_engagement_user ON engagement_context(user_id, captured_at);
`
