package handler

import (
	"context"

	"google.golang.org/grpc"

	"github.com/rl1809/vase-shop/internal/core/domain"
)

// ShopClient calls vaseshop.ShopService over any gRPC connection.
type ShopClient struct {
	cc grpc.ClientConnInterface
}

func NewShopClient(cc grpc.ClientConnInterface) *ShopClient {
	return &ShopClient{cc: cc}
}

func (c *ShopClient) invoke(ctx context.Context, method string, in, out any) error {
	return c.cc.Invoke(ctx, "/"+shopServiceName+"/"+method, in, out, grpc.CallContentSubtype(JSONCodecName))
}

func (c *ShopClient) CreateVase(ctx context.Context, name string, unitPrice float64) (*domain.Vase, error) {
	out := new(domain.Vase)
	err := c.invoke(ctx, "CreateVase", &CreateVaseRequest{Name: name, UnitPrice: unitPrice}, out)
	return out, err
}

func (c *ShopClient) GetVaseById(ctx context.Context, vaseID string) (*domain.Vase, error) {
	out := new(domain.Vase)
	err := c.invoke(ctx, "GetVaseById", &VaseRequest{VaseID: vaseID}, out)
	return out, err
}

func (c *ShopClient) GetAllVases(ctx context.Context) ([]domain.Vase, error) {
	out := new(VaseList)
	err := c.invoke(ctx, "GetAllVases", &Empty{}, out)
	return out.Vases, err
}

func (c *ShopClient) UpdateVase(ctx context.Context, id, name string, unitPrice float64) (*domain.Vase, error) {
	out := new(domain.Vase)
	err := c.invoke(ctx, "UpdateVase", &UpdateVaseRequest{ID: id, Name: name, UnitPrice: unitPrice}, out)
	return out, err
}

func (c *ShopClient) CreateNewShoppingCart(ctx context.Context) (*domain.Cart, error) {
	out := new(domain.Cart)
	err := c.invoke(ctx, "CreateNewShoppingCart", &Empty{}, out)
	return out, err
}

func (c *ShopClient) GetShoppingCartById(ctx context.Context, cartID string) (*domain.Cart, error) {
	out := new(domain.Cart)
	err := c.invoke(ctx, "GetShoppingCartById", &CartRequest{CartID: cartID}, out)
	return out, err
}

func (c *ShopClient) GetAllShoppingCarts(ctx context.Context) ([]domain.Cart, error) {
	out := new(CartList)
	err := c.invoke(ctx, "GetAllShoppingCarts", &Empty{}, out)
	return out.Carts, err
}

func (c *ShopClient) AddItemToCart(ctx context.Context, cartID, vaseID string) (*domain.Cart, error) {
	out := new(domain.Cart)
	err := c.invoke(ctx, "AddItemToCart", &CartItemRequest{CartID: cartID, VaseID: vaseID}, out)
	return out, err
}

func (c *ShopClient) RemoveItemFromCart(ctx context.Context, cartID, vaseID string) (*domain.Cart, error) {
	out := new(domain.Cart)
	err := c.invoke(ctx, "RemoveItemFromCart", &CartItemRequest{CartID: cartID, VaseID: vaseID}, out)
	return out, err
}

func (c *ShopClient) DeleteShoppingCart(ctx context.Context, cartID string) (*domain.DeleteResult, error) {
	out := new(domain.DeleteResult)
	err := c.invoke(ctx, "DeleteShoppingCart", &CartRequest{CartID: cartID}, out)
	return out, err
}
