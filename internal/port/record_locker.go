package port

import "context"

type RecordLocker interface {
	// Lock blocks until the caller holds the lock for collection/id or ctx ends.
	// The returned func releases it and is safe to call once.
	Lock(ctx context.Context, collection, id string) (unlock func(), err error)
}

type IDGenerator interface {
	NewID() string
}
