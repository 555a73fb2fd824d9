package storage

import (
	"context"
	"database/sql"
	"errors"
)

// sqlStore implements port.RecordStore on a single table:
//
//	records(collection, id, body, updated_at)  PRIMARY KEY (collection, id)
//
// Dialects differ only in DDL and the upsert statement.
type sqlStore struct {
	db     *sql.DB
	upsert string
}

func (s *sqlStore) Exists(ctx context.Context, collection, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM records WHERE collection = ? AND id = ?`, collection, id,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, storageErr("query record", err)
	}
	return true, nil
}

func (s *sqlStore) ReadOne(ctx context.Context, collection, id string) ([]byte, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM records WHERE collection = ? AND id = ?`, collection, id,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(collection, id)
	}
	if err != nil {
		return nil, storageErr("query record", err)
	}
	return body, nil
}

func (s *sqlStore) ReadAll(ctx context.Context, collection string) (map[string][]byte, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, body FROM records WHERE collection = ?`, collection)
	if err != nil {
		return nil, storageErr("query records", err)
	}
	defer rows.Close()

	records := make(map[string][]byte)
	for rows.Next() {
		var (
			id   string
			body []byte
		)
		if err := rows.Scan(&id, &body); err != nil {
			return nil, storageErr("scan record", err)
		}
		records[id] = body
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate records", err)
	}
	return records, nil
}

// Write is a single upsert statement, so a failed write leaves the previous
// body in place.
func (s *sqlStore) Write(ctx context.Context, collection, id string, record []byte) error {
	if err := checkKey(collection, id); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, s.upsert, collection, id, record); err != nil {
		return storageErr("upsert record", err)
	}
	return nil
}

func (s *sqlStore) Delete(ctx context.Context, collection, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM records WHERE collection = ? AND id = ?`, collection, id,
	)
	if err != nil {
		return storageErr("delete record", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storageErr("delete record", err)
	}
	if rows == 0 {
		return notFound(collection, id)
	}
	return nil
}
