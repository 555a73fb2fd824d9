package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/vase-shop/internal/core/domain"
	"github.com/rl1809/vase-shop/internal/port"
)

// runStoreTests runs a common suite against any RecordStore implementation.
func runStoreTests(t *testing.T, s port.RecordStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("ReadAll empty", func(t *testing.T) {
		records, err := s.ReadAll(ctx, "vases")
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("Exists missing", func(t *testing.T) {
		ok, err := s.Exists(ctx, "vases", "k1")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Write and ReadOne", func(t *testing.T) {
		require.NoError(t, s.Write(ctx, "vases", "k1", []byte(`{"id":"k1","name":"Ming"}`)))

		got, err := s.ReadOne(ctx, "vases", "k1")
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"k1","name":"Ming"}`, string(got))

		ok, err := s.Exists(ctx, "vases", "k1")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("ReadOne missing", func(t *testing.T) {
		_, err := s.ReadOne(ctx, "vases", "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Write overwrites", func(t *testing.T) {
		require.NoError(t, s.Write(ctx, "vases", "k1", []byte(`{"id":"k1","name":"Tang"}`)))

		got, err := s.ReadOne(ctx, "vases", "k1")
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"k1","name":"Tang"}`, string(got))
	})

	t.Run("ReadAll returns all", func(t *testing.T) {
		require.NoError(t, s.Write(ctx, "vases", "k2", []byte(`{"id":"k2"}`)))

		records, err := s.ReadAll(ctx, "vases")
		require.NoError(t, err)
		got := make(map[string]string, len(records))
		for id, r := range records {
			got[id] = string(r)
		}
		assert.Equal(t, map[string]string{"k1": `{"id":"k1","name":"Tang"}`, "k2": `{"id":"k2"}`}, got)
	})

	t.Run("collections are isolated", func(t *testing.T) {
		require.NoError(t, s.Write(ctx, "carts", "k1", []byte(`{"cartId":"k1"}`)))

		vase, err := s.ReadOne(ctx, "vases", "k1")
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"k1","name":"Tang"}`, string(vase))

		carts, err := s.ReadAll(ctx, "carts")
		require.NoError(t, err)
		assert.Len(t, carts, 1)
	})

	t.Run("Delete existing", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, "vases", "k1"))

		_, err := s.ReadOne(ctx, "vases", "k1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Delete missing", func(t *testing.T) {
		err := s.Delete(ctx, "vases", "k1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("invalid ids", func(t *testing.T) {
		for _, id := range []string{"", "../escape", "a/b", ".hidden"} {
			err := s.Write(ctx, "vases", id, []byte(`{}`))
			assert.ErrorIs(t, err, domain.ErrInvalidID, "id %q", id)

			ok, err := s.Exists(ctx, "vases", id)
			require.NoError(t, err)
			assert.False(t, ok)

			_, err = s.ReadOne(ctx, "vases", id)
			assert.ErrorIs(t, err, domain.ErrNotFound)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreTests(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	runStoreTests(t, s)
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer s.Close()
	runStoreTests(t, s)
}

func TestFileStore_Layout(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, "carts", "c1", []byte(`{"cartId":"c1"}`)))

	data, err := os.ReadFile(filepath.Join(dir, "carts", "c1.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"cartId":"c1"}`, string(data))

	entries, err := os.ReadDir(filepath.Join(dir, "carts"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestFileStore_ReadAllSkipsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, "vases", "v1", []byte(`{"id":"v1"}`)))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vases", ".v2.json123"), []byte("partial"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vases", "README.txt"), []byte("notes"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "vases", "sub.json"), 0o755))

	records, err := s.ReadAll(ctx, "vases")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, `{"id":"v1"}`, string(records["v1"]))
}

func TestFileStore_ReadAllKeysByFileName(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "vases"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vases", "a.json"), []byte(`{"id":"b"}`), 0o644))

	records, err := s.ReadAll(context.Background(), "vases")
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"a": []byte(`{"id":"b"}`)}, records)
}

// stopAfter reports context.Canceled once Err has been called more than n times.
type stopAfter struct {
	context.Context
	n, calls int
}

func (c *stopAfter) Err() error {
	c.calls++
	if c.calls > c.n {
		return context.Canceled
	}
	return nil
}

func TestFileStore_ReadAllStopsWhenCanceledMidListing(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, "vases", "v1", []byte(`{"id":"v1"}`)))
	require.NoError(t, s.Write(ctx, "vases", "v2", []byte(`{"id":"v2"}`)))

	_, err = s.ReadAll(&stopAfter{Context: ctx, n: 1}, "vases")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileStore_StatFailureIsStorageError(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, "vases", "v1", []byte(`{"id":"v1"}`)))
	require.NoError(t, os.Chmod(filepath.Join(dir, "vases"), 0o000))
	defer os.Chmod(filepath.Join(dir, "vases"), 0o755)

	_, err = s.Exists(ctx, "vases", "v1")
	assert.ErrorIs(t, err, domain.ErrStorage)

	_, err = s.ReadOne(ctx, "vases", "v1")
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestFileStore_CanceledContext(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = s.Write(ctx, "vases", "v1", []byte(`{}`))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = s.ReadAll(ctx, "vases")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFactory(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	for _, backend := range []string{"file", "sqlite", "memory", ""} {
		t.Run(backend, func(t *testing.T) {
			s, closeFn, err := New(ctx, backend, filepath.Join(dir, backend), "")
			require.NoError(t, err)
			defer closeFn()
			assert.NotNil(t, s)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, _, err := New(ctx, "mongo", dir, "")
		assert.Error(t, err)
	})
}
