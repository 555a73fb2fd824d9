package storage

import (
	"fmt"
	"strings"

	"github.com/rl1809/vase-shop/internal/core/domain"
)

// validName rejects names that cannot be used as a single path element.
func validName(s string) bool {
	if s == "" || strings.HasPrefix(s, ".") {
		return false
	}
	return !strings.ContainsAny(s, `/\`+"\x00")
}

func checkKey(collection, id string) error {
	if !validName(collection) || !validName(id) {
		return fmt.Errorf("%q/%q: %w", collection, id, domain.ErrInvalidID)
	}
	return nil
}

func notFound(collection, id string) error {
	return fmt.Errorf("%s/%s: %w", collection, id, domain.ErrNotFound)
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
}
