package service

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/rl1809/vase-shop/internal/core/domain"
	"github.com/rl1809/vase-shop/internal/port"
)

const (
	vaseCollection = "vases"
	cartCollection = "carts"
)

type record interface {
	domain.Vase | domain.Cart
	RecordID() string
	Validate() error
}

// collection decodes raw records from a RecordStore into T.
type collection[T record] struct {
	store    port.RecordStore
	name     string
	notFound error
}

func (c collection[T]) exists(ctx context.Context, id string) (bool, error) {
	return c.store.Exists(ctx, c.name, id)
}

func (c collection[T]) get(ctx context.Context, id string) (T, error) {
	var zero T
	data, err := c.store.ReadOne(ctx, c.name, id)
	if err != nil {
		if isNotFound(err) {
			return zero, c.notFound
		}
		return zero, err
	}
	return c.decode(id, data)
}

// all returns the records ordered by id and fails on the first one that
// does not decode.
func (c collection[T]) all(ctx context.Context) ([]T, error) {
	raw, err := c.store.ReadAll(ctx, c.name)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(raw))
	for _, id := range slices.Sorted(maps.Keys(raw)) {
		v, err := c.decode(id, raw[id])
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (c collection[T]) put(ctx context.Context, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w: %w", c.name, v.RecordID(), domain.ErrStorage, err)
	}
	return c.store.Write(ctx, c.name, v.RecordID(), data)
}

func (c collection[T]) delete(ctx context.Context, id string) error {
	return c.store.Delete(ctx, c.name, id)
}

func (c collection[T]) decode(id string, data []byte) (T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("%s/%s: %w: %w", c.name, id, domain.ErrCorruptRecord, err)
	}
	if v.RecordID() != id {
		return v, fmt.Errorf("%s/%s: %w: stored id %q", c.name, id, domain.ErrCorruptRecord, v.RecordID())
	}
	// the rule violation is reported as corrupt data, not as bad input
	if err := v.Validate(); err != nil {
		return v, fmt.Errorf("%s/%s: %w: %v", c.name, id, domain.ErrCorruptRecord, err)
	}
	return v, nil
}
