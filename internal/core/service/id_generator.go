package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/rl1809/vase-shop/internal/core/domain"
)

// maxIDAttempts bounds the collision loop. With random UUIDs a second
// attempt is already astronomically unlikely.
const maxIDAttempts = 16

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

func (s *ShopService) unusedID(ctx context.Context, exists func(context.Context, string) (bool, error)) (string, error) {
	for range maxIDAttempts {
		id := s.ids.NewID()
		taken, err := exists(ctx, id)
		if err != nil {
			return "", err
		}
		if !taken {
			return id, nil
		}
	}
	return "", domain.ErrIDSpaceExhausted
}
