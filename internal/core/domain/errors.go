package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the service wraps exactly one of these.
var (
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation error")
	ErrCorruptRecord = errors.New("corrupt record")
	ErrStorage       = errors.New("storage error")
)

var (
	ErrVaseNotFound = fmt.Errorf("that vase does not exist: %w", ErrNotFound)
	ErrCartNotFound = fmt.Errorf("that cart does not exist: %w", ErrNotFound)

	ErrEmptyName     = fmt.Errorf("name must be at least 1 character long: %w", ErrValidation)
	ErrNegativePrice = fmt.Errorf("unit price must be a non-negative number: %w", ErrValidation)
	ErrItemNotInCart = fmt.Errorf("this vase does not exist in this cart: %w", ErrValidation)
	ErrInvalidID     = fmt.Errorf("invalid record id: %w", ErrValidation)

	ErrIDSpaceExhausted = fmt.Errorf("could not generate an unused id: %w", ErrStorage)
	ErrLockTimeout      = fmt.Errorf("timed out waiting for record lock: %w", ErrStorage)
)
