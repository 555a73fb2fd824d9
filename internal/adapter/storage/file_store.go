package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
)

const recordExt = ".json"

// FileStore keeps one file per record.
//
// Layout:
//
//	data_dir/
//	  vases/<id>.json
//	  carts/<id>.json
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, storageErr("create data dir", err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) collectionDir(collection string) string {
	return filepath.Join(f.dir, collection)
}

func (f *FileStore) recordPath(collection, id string) string {
	return filepath.Join(f.dir, collection, id+recordExt)
}

func (f *FileStore) Exists(ctx context.Context, collection, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if checkKey(collection, id) != nil {
		return false, nil
	}
	_, err := os.Stat(f.recordPath(collection, id))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, storageErr("stat "+collection+"/"+id, err)
	}
	return true, nil
}

func (f *FileStore) ReadOne(ctx context.Context, collection, id string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if checkKey(collection, id) != nil {
		return nil, notFound(collection, id)
	}
	data, err := os.ReadFile(f.recordPath(collection, id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, notFound(collection, id)
	}
	if err != nil {
		return nil, storageErr("read "+collection+"/"+id, err)
	}
	return data, nil
}

func (f *FileStore) ReadAll(ctx context.Context, collection string) (map[string][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !validName(collection) {
		return map[string][]byte{}, nil
	}
	entries, err := os.ReadDir(f.collectionDir(collection))
	if errors.Is(err, fs.ErrNotExist) {
		return map[string][]byte{}, nil
	}
	if err != nil {
		return nil, storageErr("list "+collection, err)
	}

	records := make(map[string][]byte, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := e.Name()
		// renameio temp files start with a dot
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, recordExt) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(f.collectionDir(collection), name))
		if errors.Is(err, fs.ErrNotExist) {
			// deleted between ReadDir and ReadFile
			continue
		}
		if err != nil {
			return nil, storageErr("read "+collection+"/"+name, err)
		}
		records[strings.TrimSuffix(name, recordExt)] = data
	}
	return records, nil
}

func (f *FileStore) Write(ctx context.Context, collection, id string, record []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkKey(collection, id); err != nil {
		return err
	}
	if err := os.MkdirAll(f.collectionDir(collection), 0o755); err != nil {
		return storageErr("create "+collection, err)
	}
	if err := renameio.WriteFile(f.recordPath(collection, id), record, 0o644); err != nil {
		return storageErr("write "+collection+"/"+id, err)
	}
	return nil
}

func (f *FileStore) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if checkKey(collection, id) != nil {
		return notFound(collection, id)
	}
	err := os.Remove(f.recordPath(collection, id))
	if errors.Is(err, fs.ErrNotExist) {
		return notFound(collection, id)
	}
	if err != nil {
		return storageErr("delete "+collection+"/"+id, err)
	}
	return nil
}
