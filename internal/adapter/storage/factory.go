package storage

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rl1809/vase-shop/internal/port"
)

// New creates a RecordStore based on the backend name. The returned func
// releases any connection the store holds.
//
// Supported backends:
//
//	"file"   - one JSON file per record under dataDir (default)
//	"sqlite" - SQLite database at dataDir/vase-shop.db
//	"mysql"  - MySQL at dsn, records table created on start
//	"memory" - in-memory (ephemeral, for testing)
func New(ctx context.Context, backend, dataDir, dsn string) (port.RecordStore, func() error, error) {
	noop := func() error { return nil }

	switch backend {
	case "file", "":
		s, err := NewFileStore(dataDir)
		if err != nil {
			return nil, nil, err
		}
		return s, noop, nil
	case "sqlite":
		s, err := NewSQLiteStore(filepath.Join(dataDir, "vase-shop.db"))
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case "mysql":
		db, err := openMySQL(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		s := NewMySQLStore(db)
		if err := s.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return s, db.Close, nil
	case "memory":
		return NewMemoryStore(), noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend: %q (supported: file, sqlite, mysql, memory)", backend)
	}
}

func openMySQL(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, storageErr("open mysql", err)
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, storageErr("ping mysql", err)
	}
	return db, nil
}
