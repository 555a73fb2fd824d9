package handler

import (
	"context"
	"errors"
	"log"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rl1809/vase-shop/internal/core/domain"
	"github.com/rl1809/vase-shop/internal/core/service"
)

const shopServiceName = "vaseshop.ShopService"

type Empty struct{}

type CreateVaseRequest struct {
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
}

type UpdateVaseRequest struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
}

type VaseRequest struct {
	VaseID string `json:"vaseId"`
}

type CartRequest struct {
	CartID string `json:"cartId"`
}

type CartItemRequest struct {
	CartID string `json:"cartId"`
	VaseID string `json:"vaseId"`
}

type VaseList struct {
	Vases []domain.Vase `json:"vases"`
}

type CartList struct {
	Carts []domain.Cart `json:"carts"`
}

// ShopServer is the server side of vaseshop.ShopService.
type ShopServer interface {
	CreateVase(context.Context, *CreateVaseRequest) (*domain.Vase, error)
	GetVaseById(context.Context, *VaseRequest) (*domain.Vase, error)
	GetAllVases(context.Context, *Empty) (*VaseList, error)
	UpdateVase(context.Context, *UpdateVaseRequest) (*domain.Vase, error)
	CreateNewShoppingCart(context.Context, *Empty) (*domain.Cart, error)
	GetShoppingCartById(context.Context, *CartRequest) (*domain.Cart, error)
	GetAllShoppingCarts(context.Context, *Empty) (*CartList, error)
	AddItemToCart(context.Context, *CartItemRequest) (*domain.Cart, error)
	RemoveItemFromCart(context.Context, *CartItemRequest) (*domain.Cart, error)
	DeleteShoppingCart(context.Context, *CartRequest) (*domain.DeleteResult, error)
}

var shopServiceDesc = grpc.ServiceDesc{
	ServiceName: shopServiceName,
	HandlerType: (*ShopServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("CreateVase", ShopServer.CreateVase),
		unaryMethod("GetVaseById", ShopServer.GetVaseById),
		unaryMethod("GetAllVases", ShopServer.GetAllVases),
		unaryMethod("UpdateVase", ShopServer.UpdateVase),
		unaryMethod("CreateNewShoppingCart", ShopServer.CreateNewShoppingCart),
		unaryMethod("GetShoppingCartById", ShopServer.GetShoppingCartById),
		unaryMethod("GetAllShoppingCarts", ShopServer.GetAllShoppingCarts),
		unaryMethod("AddItemToCart", ShopServer.AddItemToCart),
		unaryMethod("RemoveItemFromCart", ShopServer.RemoveItemFromCart),
		unaryMethod("DeleteShoppingCart", ShopServer.DeleteShoppingCart),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "vaseshop/shop.proto",
}

func RegisterShopServer(s grpc.ServiceRegistrar, srv ShopServer) {
	s.RegisterService(&shopServiceDesc, srv)
}

func unaryMethod[Req, Resp any](name string, call func(ShopServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ShopServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + shopServiceName + "/" + name}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(ShopServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// LoggingInterceptor logs failed calls with their status code.
func LoggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	if err != nil {
		log.Printf("grpc %s: %s (%v): %v", info.FullMethod, status.Code(err), time.Since(start), err)
	}
	return resp, err
}

type GRPCHandler struct {
	shop *service.ShopService
}

func NewGRPCHandler(shop *service.ShopService) *GRPCHandler {
	return &GRPCHandler{shop: shop}
}

func (h *GRPCHandler) CreateVase(ctx context.Context, req *CreateVaseRequest) (*domain.Vase, error) {
	vase, err := h.shop.CreateVase(ctx, req.Name, req.UnitPrice)
	if err != nil {
		return nil, toStatus(err)
	}
	return &vase, nil
}

func (h *GRPCHandler) GetVaseById(ctx context.Context, req *VaseRequest) (*domain.Vase, error) {
	vase, err := h.shop.GetVaseByID(ctx, req.VaseID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &vase, nil
}

func (h *GRPCHandler) GetAllVases(ctx context.Context, _ *Empty) (*VaseList, error) {
	vases, err := h.shop.GetAllVases(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return &VaseList{Vases: vases}, nil
}

func (h *GRPCHandler) UpdateVase(ctx context.Context, req *UpdateVaseRequest) (*domain.Vase, error) {
	vase, err := h.shop.UpdateVase(ctx, req.ID, req.Name, req.UnitPrice)
	if err != nil {
		return nil, toStatus(err)
	}
	return &vase, nil
}

func (h *GRPCHandler) CreateNewShoppingCart(ctx context.Context, _ *Empty) (*domain.Cart, error) {
	cart, err := h.shop.CreateNewShoppingCart(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return &cart, nil
}

func (h *GRPCHandler) GetShoppingCartById(ctx context.Context, req *CartRequest) (*domain.Cart, error) {
	cart, err := h.shop.GetShoppingCartByID(ctx, req.CartID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &cart, nil
}

func (h *GRPCHandler) GetAllShoppingCarts(ctx context.Context, _ *Empty) (*CartList, error) {
	carts, err := h.shop.GetAllShoppingCarts(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return &CartList{Carts: carts}, nil
}

func (h *GRPCHandler) AddItemToCart(ctx context.Context, req *CartItemRequest) (*domain.Cart, error) {
	cart, err := h.shop.AddItemToCart(ctx, req.CartID, req.VaseID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &cart, nil
}

func (h *GRPCHandler) RemoveItemFromCart(ctx context.Context, req *CartItemRequest) (*domain.Cart, error) {
	cart, err := h.shop.RemoveItemFromCart(ctx, req.CartID, req.VaseID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &cart, nil
}

func (h *GRPCHandler) DeleteShoppingCart(ctx context.Context, req *CartRequest) (*domain.DeleteResult, error) {
	res, err := h.shop.DeleteShoppingCart(ctx, req.CartID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &res, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrCorruptRecord):
		return status.Error(codes.DataLoss, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
