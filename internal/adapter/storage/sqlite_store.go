package storage

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // registers "sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS records (
	collection TEXT      NOT NULL,
	id         TEXT      NOT NULL,
	body       BLOB      NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (collection, id)
)`

const sqliteUpsert = `
INSERT INTO records (collection, id, body) VALUES (?, ?, ?)
ON CONFLICT (collection, id) DO UPDATE SET body = excluded.body, updated_at = CURRENT_TIMESTAMP`

// SQLiteStore keeps every collection in one SQLite database file.
type SQLiteStore struct {
	sqlStore
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, storageErr("create db dir", err)
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, storageErr("open sqlite", err)
	}
	// one writer at a time; avoids SQLITE_BUSY under concurrent upserts
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, storageErr("enable wal", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, storageErr("create records table", err)
	}
	return &SQLiteStore{sqlStore{db: db, upsert: sqliteUpsert}}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
