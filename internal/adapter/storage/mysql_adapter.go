package storage

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
)

const mysqlSchema = `
CREATE TABLE IF NOT EXISTS records (
	collection VARCHAR(64)  NOT NULL,
	id         VARCHAR(191) NOT NULL,
	body       LONGBLOB     NOT NULL,
	updated_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6) ON UPDATE CURRENT_TIMESTAMP(6),
	PRIMARY KEY (collection, id)
)`

const mysqlUpsert = `
INSERT INTO records (collection, id, body) VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE body = VALUES(body)`

type MySQLStore struct {
	sqlStore
}

// NewMySQLStore wraps an open *sql.DB. Call Migrate once before use.
func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{sqlStore{db: db, upsert: mysqlUpsert}}
}

func (m *MySQLStore) Migrate(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, mysqlSchema); err != nil {
		return storageErr("create records table", err)
	}
	return nil
}
