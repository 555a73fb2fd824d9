package service

import (
	"context"
	"log"

	"github.com/rl1809/vase-shop/internal/core/domain"
)

func (s *ShopService) CreateNewShoppingCart(ctx context.Context) (domain.Cart, error) {
	id, err := s.unusedID(ctx, s.carts.exists)
	if err != nil {
		return domain.Cart{}, err
	}

	cart := domain.NewCart(id)
	if err := s.carts.put(ctx, cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

func (s *ShopService) GetShoppingCartByID(ctx context.Context, cartID string) (domain.Cart, error) {
	return s.carts.get(ctx, cartID)
}

func (s *ShopService) GetAllShoppingCarts(ctx context.Context) ([]domain.Cart, error) {
	return s.carts.all(ctx)
}

// AddItemToCart adds one unit of vaseID. The vase is only looked up when the
// cart has no line for it yet.
func (s *ShopService) AddItemToCart(ctx context.Context, cartID, vaseID string) (domain.Cart, error) {
	return s.mutateCart(ctx, cartID, func(cart *domain.Cart) error {
		if cart.IncrementLine(vaseID) {
			return nil
		}
		vase, err := s.vases.get(ctx, vaseID)
		if err != nil {
			return err
		}
		cart.AddVase(vase)
		return nil
	})
}

func (s *ShopService) RemoveItemFromCart(ctx context.Context, cartID, vaseID string) (domain.Cart, error) {
	return s.mutateCart(ctx, cartID, func(cart *domain.Cart) error {
		return cart.RemoveOne(vaseID)
	})
}

// DeleteShoppingCart reports a failed delete as Success=false instead of an
// error. Only a missing cart is returned as an error, including one removed
// behind the store's back after the existence check.
func (s *ShopService) DeleteShoppingCart(ctx context.Context, cartID string) (domain.DeleteResult, error) {
	unlock, err := s.locker.Lock(ctx, cartCollection, cartID)
	if err != nil {
		return domain.DeleteResult{}, err
	}
	defer unlock()

	ok, err := s.carts.exists(ctx, cartID)
	if err != nil {
		return domain.DeleteResult{}, err
	}
	if !ok {
		return domain.DeleteResult{}, domain.ErrCartNotFound
	}

	if err := s.carts.delete(ctx, cartID); err != nil {
		if isNotFound(err) {
			return domain.DeleteResult{}, domain.ErrCartNotFound
		}
		log.Printf("delete cart %s: %v", cartID, err)
		return domain.DeleteResult{DeletedID: cartID, Success: false}, nil
	}
	return domain.DeleteResult{DeletedID: cartID, Success: true}, nil
}

// mutateCart loads the cart under its lock, applies fn and writes the result.
// Nothing is written when fn fails.
func (s *ShopService) mutateCart(ctx context.Context, cartID string, fn func(*domain.Cart) error) (domain.Cart, error) {
	unlock, err := s.locker.Lock(ctx, cartCollection, cartID)
	if err != nil {
		return domain.Cart{}, err
	}
	defer unlock()

	cart, err := s.carts.get(ctx, cartID)
	if err != nil {
		return domain.Cart{}, err
	}
	if err := fn(&cart); err != nil {
		return domain.Cart{}, err
	}
	cart.Recalculate()
	if err := s.carts.put(ctx, cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}
