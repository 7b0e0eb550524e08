package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pawmart/storefront-backend/internal/repository"
	"github.com/pawmart/storefront-backend/internal/service"
	"github.com/pawmart/storefront-backend/internal/viewers"
)

// ProductHandler handles product catalog HTTP requests
type ProductHandler struct {
	service *service.ProductService
	viewers *viewers.Counter
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *service.ProductService, viewers *viewers.Counter, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		viewers: viewers,
		logger:  logger,
	}
}

// ListProducts handles GET /api/product?category=food
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	products, err := h.service.ListProducts(ctx, r.URL.Query().Get("category"))
	if err != nil {
		h.logger.Error("failed to list products", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, products, h.logger)
}

// GetProduct handles GET /api/product/{productId}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	productID := chi.URLParam(r, "productId")

	if productID == "" {
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	product, err := h.service.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			h.logger.Info("product not found", "product_id", productID)
			WriteError(w, http.StatusNotFound, "Product not found", h.logger)
			return
		}

		h.logger.Error("failed to get product", "product_id", productID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, product, h.logger)
}

// viewersResponse is the live viewer count payload
type viewersResponse struct {
	ProductID string `json:"productId"`
	Viewers   int64  `json:"viewers"`
}

// GetViewers handles GET /api/product/{productId}/viewers
func (h *ProductHandler) GetViewers(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	count := h.viewers.Count(r.Context(), productID)
	WriteJSON(w, http.StatusOK, viewersResponse{ProductID: productID, Viewers: count}, h.logger)
}

// EnterViewers handles POST /api/product/{productId}/viewers/enter
func (h *ProductHandler) EnterViewers(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	count := h.viewers.Enter(r.Context(), productID)
	WriteJSON(w, http.StatusOK, viewersResponse{ProductID: productID, Viewers: count}, h.logger)
}

// LeaveViewers handles POST /api/product/{productId}/viewers/leave
func (h *ProductHandler) LeaveViewers(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	count := h.viewers.Leave(r.Context(), productID)
	WriteJSON(w, http.StatusOK, viewersResponse{ProductID: productID, Viewers: count}, h.logger)
}
