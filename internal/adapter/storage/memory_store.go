package storage

import (
	"bytes"
	"context"
	"sync"
)

// MemoryStore keeps everything in memory. Data is lost on restart.
// Safe for concurrent use.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string][]byte)}
}

func (m *MemoryStore) Exists(_ context.Context, collection, id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.collections[collection][id]
	return ok, nil
}

func (m *MemoryStore) ReadOne(_ context.Context, collection, id string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.collections[collection][id]
	if !ok {
		return nil, notFound(collection, id)
	}
	return bytes.Clone(data), nil
}

func (m *MemoryStore) ReadAll(_ context.Context, collection string) (map[string][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	coll := m.collections[collection]
	records := make(map[string][]byte, len(coll))
	for id, data := range coll {
		records[id] = bytes.Clone(data)
	}
	return records, nil
}

func (m *MemoryStore) Write(_ context.Context, collection, id string, record []byte) error {
	if err := checkKey(collection, id); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.collections[collection]; !ok {
		m.collections[collection] = make(map[string][]byte)
	}
	m.collections[collection][id] = bytes.Clone(record)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.collections[collection][id]; !ok {
		return notFound(collection, id)
	}
	delete(m.collections[collection], id)
	return nil
}
