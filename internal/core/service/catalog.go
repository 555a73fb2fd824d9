package service

import (
	"context"

	"github.com/rl1809/vase-shop/internal/core/domain"
)

func (s *ShopService) CreateVase(ctx context.Context, name string, unitPrice float64) (domain.Vase, error) {
	if err := domain.ValidateVase(name, unitPrice); err != nil {
		return domain.Vase{}, err
	}

	id, err := s.unusedID(ctx, s.vases.exists)
	if err != nil {
		return domain.Vase{}, err
	}

	vase := domain.Vase{ID: id, Name: name, UnitPrice: unitPrice}
	if err := s.vases.put(ctx, vase); err != nil {
		return domain.Vase{}, err
	}
	return vase, nil
}

func (s *ShopService) GetVaseByID(ctx context.Context, id string) (domain.Vase, error) {
	return s.vases.get(ctx, id)
}

func (s *ShopService) GetAllVases(ctx context.Context) ([]domain.Vase, error) {
	return s.vases.all(ctx)
}

// UpdateVase replaces name and unit price. Carts keep the values they
// copied when the vase was added.
func (s *ShopService) UpdateVase(ctx context.Context, id, name string, unitPrice float64) (domain.Vase, error) {
	if err := domain.ValidateVase(name, unitPrice); err != nil {
		return domain.Vase{}, err
	}

	unlock, err := s.locker.Lock(ctx, vaseCollection, id)
	if err != nil {
		return domain.Vase{}, err
	}
	defer unlock()

	ok, err := s.vases.exists(ctx, id)
	if err != nil {
		return domain.Vase{}, err
	}
	if !ok {
		return domain.Vase{}, domain.ErrVaseNotFound
	}

	vase := domain.Vase{ID: id, Name: name, UnitPrice: unitPrice}
	if err := s.vases.put(ctx, vase); err != nil {
		return domain.Vase{}, err
	}
	return vase, nil
}
