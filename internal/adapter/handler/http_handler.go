package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rl1809/vase-shop/internal/core/domain"
	"github.com/rl1809/vase-shop/internal/core/service"
)

const maxRequestBodySize = 1 << 20 // 1MB

type HTTPHandler struct {
	shop    *service.ShopService
	timeout time.Duration
}

type VaseHTTPRequest struct {
	Name      *string  `json:"name"`
	UnitPrice *float64 `json:"unitPrice"`
}

type AddItemHTTPRequest struct {
	VaseID string `json:"vaseId"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func NewHTTPHandler(shop *service.ShopService, timeout time.Duration) *HTTPHandler {
	return &HTTPHandler{shop: shop, timeout: timeout}
}

// Routes returns the router with every endpoint mounted.
func (h *HTTPHandler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.HealthCheck)
	r.Handle("/graphql", NewGraphQLHandler(h.shop, h.timeout))

	r.Route("/api", func(r chi.Router) {
		r.Get("/vases", h.GetAllVases)
		r.Post("/vases", h.CreateVase)
		r.Get("/vases/{id}", h.GetVaseByID)
		r.Put("/vases/{id}", h.UpdateVase)

		r.Get("/carts", h.GetAllShoppingCarts)
		r.Post("/carts", h.CreateNewShoppingCart)
		r.Get("/carts/{id}", h.GetShoppingCartByID)
		r.Delete("/carts/{id}", h.DeleteShoppingCart)
		r.Post("/carts/{id}/items", h.AddItemToCart)
		r.Delete("/carts/{id}/items/{vaseId}", h.RemoveItemFromCart)
	})

	return r
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) GetAllVases(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.context(r)
	defer cancel()

	vases, err := h.shop.GetAllVases(ctx)
	h.respond(w, r, http.StatusOK, vases, err)
}

func (h *HTTPHandler) CreateVase(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.context(r)
	defer cancel()

	req, ok := decodeVaseRequest(w, r)
	if !ok {
		return
	}

	vase, err := h.shop.CreateVase(ctx, *req.Name, *req.UnitPrice)
	h.respond(w, r, http.StatusCreated, vase, err)
}

func (h *HTTPHandler) GetVaseByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.context(r)
	defer cancel()

	vase, err := h.shop.GetVaseByID(ctx, chi.URLParam(r, "id"))
	h.respond(w, r, http.StatusOK, vase, err)
}

func (h *HTTPHandler) UpdateVase(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.context(r)
	defer cancel()

	req, ok := decodeVaseRequest(w, r)
	if !ok {
		return
	}

	vase, err := h.shop.UpdateVase(ctx, chi.URLParam(r, "id"), *req.Name, *req.UnitPrice)
	h.respond(w, r, http.StatusOK, vase, err)
}

func (h *HTTPHandler) GetAllShoppingCarts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.context(r)
	defer cancel()

	carts, err := h.shop.GetAllShoppingCarts(ctx)
	h.respond(w, r, http.StatusOK, carts, err)
}

func (h *HTTPHandler) CreateNewShoppingCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.context(r)
	defer cancel()

	cart, err := h.shop.CreateNewShoppingCart(ctx)
	h.respond(w, r, http.StatusCreated, cart, err)
}

func (h *HTTPHandler) GetShoppingCartByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.context(r)
	defer cancel()

	cart, err := h.shop.GetShoppingCartByID(ctx, chi.URLParam(r, "id"))
	h.respond(w, r, http.StatusOK, cart, err)
}

func (h *HTTPHandler) DeleteShoppingCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.context(r)
	defer cancel()

	res, err := h.shop.DeleteShoppingCart(ctx, chi.URLParam(r, "id"))
	h.respond(w, r, http.StatusOK, res, err)
}

func (h *HTTPHandler) AddItemToCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.context(r)
	defer cancel()

	var req AddItemHTTPRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.VaseID == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "vaseId is required")
		return
	}

	cart, err := h.shop.AddItemToCart(ctx, chi.URLParam(r, "id"), req.VaseID)
	h.respond(w, r, http.StatusOK, cart, err)
}

func (h *HTTPHandler) RemoveItemFromCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.context(r)
	defer cancel()

	cart, err := h.shop.RemoveItemFromCart(ctx, chi.URLParam(r, "id"), chi.URLParam(r, "vaseId"))
	h.respond(w, r, http.StatusOK, cart, err)
}

func (h *HTTPHandler) context(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.timeout)
}

func (h *HTTPHandler) respond(w http.ResponseWriter, r *http.Request, status int, data any, err error) {
	if err == nil {
		writeJSON(w, status, data)
		return
	}

	status, code := errorStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("%s %s [%s]: %v", r.Method, r.URL.Path, middleware.GetReqID(r.Context()), err)
	}
	respondError(w, status, code, err.Error())
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, domain.ErrCorruptRecord):
		return http.StatusInternalServerError, "corrupt_record"
	default:
		return http.StatusInternalServerError, "storage_error"
	}
}

func decodeVaseRequest(w http.ResponseWriter, r *http.Request) (VaseHTTPRequest, bool) {
	var req VaseHTTPRequest
	if !decodeBody(w, r, &req) {
		return req, false
	}
	if req.Name == nil || req.UnitPrice == nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "name and unitPrice are required")
		return req, false
	}
	return req, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return false
	}
	return true
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
