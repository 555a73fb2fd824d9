package service

import (
	"errors"

	"github.com/rl1809/vase-shop/internal/core/domain"
	"github.com/rl1809/vase-shop/internal/port"
)

// ShopService implements the catalog and cart operations on top of a
// RecordStore. Read-modify-write sequences hold the record's lock.
type ShopService struct {
	locker port.RecordLocker
	ids    port.IDGenerator
	vases  collection[domain.Vase]
	carts  collection[domain.Cart]
}

func NewShopService(store port.RecordStore, locker port.RecordLocker, ids port.IDGenerator) *ShopService {
	return &ShopService{
		locker: locker,
		ids:    ids,
		vases:  collection[domain.Vase]{store: store, name: vaseCollection, notFound: domain.ErrVaseNotFound},
		carts:  collection[domain.Cart]{store: store, name: cartCollection, notFound: domain.ErrCartNotFound},
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
