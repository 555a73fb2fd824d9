package port

import "context"

// RecordStore persists one serialized record per id inside a named collection.
type RecordStore interface {
	// Exists reports whether a record is stored under id. Absence is not an error.
	Exists(ctx context.Context, collection, id string) (bool, error)

	// ReadOne returns the stored bytes, or domain.ErrNotFound
	ReadOne(ctx context.Context, collection, id string) ([]byte, error)

	// ReadAll returns every record of the collection keyed by the id it is stored under
	ReadAll(ctx context.Context, collection string) (map[string][]byte, error)

	// Write creates or atomically replaces the record
	Write(ctx context.Context, collection, id string, record []byte) error

	// Delete removes the record, or returns domain.ErrNotFound
	Delete(ctx context.Context, collection, id string) error
}
