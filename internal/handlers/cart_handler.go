package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pawmart/storefront-backend/internal/cart"
	"github.com/pawmart/storefront-backend/internal/models"
	"github.com/pawmart/storefront-backend/internal/repository"
	"github.com/pawmart/storefront-backend/internal/service"
)

// CartHandler handles cart and wishlist HTTP requests
type CartHandler struct {
	store    *cart.Store
	products *service.ProductService
	logger   *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(store *cart.Store, products *service.ProductService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		store:    store,
		products: products,
		logger:   logger,
	}
}

// addItemRequest is the body for POST /api/cart/items
type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// updateItemRequest is the body for PUT /api/cart/items/{productId}
type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

// cartResponse bundles the cart contents with its derived summary so a
// single fetch renders the whole cart view.
type cartResponse struct {
	Items   []models.CartLineItem `json:"items"`
	Summary models.OrderSummary   `json:"summary"`
}

// GetCart handles GET /api/cart?shipping=standard
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	user := userID(r)
	method, ok := shippingMethodParam(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "Unknown shipping method", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, cartResponse{
		Items:   h.store.Items(user),
		Summary: h.store.Summary(user, method),
	}, h.logger)
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode add item request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	product, err := h.products.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			WriteError(w, http.StatusBadRequest, "Invalid product", h.logger)
			return
		}
		h.logger.Error("failed to look up product", "product_id", req.ProductID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	user := userID(r)
	h.store.AddToCart(user, *product, req.Quantity)
	h.logger.Info("item added to cart", "user_id", user, "product_id", product.ID, "quantity", req.Quantity)

	h.writeCart(w, user)
}

// UpdateItem handles PUT /api/cart/items/{productId}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode update item request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	user := userID(r)
	h.store.UpdateQuantity(user, chi.URLParam(r, "productId"), req.Quantity)
	h.writeCart(w, user)
}

// RemoveItem handles DELETE /api/cart/items/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	user := userID(r)
	h.store.RemoveFromCart(user, chi.URLParam(r, "productId"))
	h.writeCart(w, user)
}

// ClearCart handles DELETE /api/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	user := userID(r)
	h.store.ClearCart(user)
	h.writeCart(w, user)
}

// MoveToWishlist handles POST /api/cart/items/{productId}/wishlist
func (h *CartHandler) MoveToWishlist(w http.ResponseWriter, r *http.Request) {
	user := userID(r)
	h.store.MoveToWishlist(user, chi.URLParam(r, "productId"))
	h.writeCart(w, user)
}

// MoveToCart handles POST /api/wishlist/{productId}/cart
func (h *CartHandler) MoveToCart(w http.ResponseWriter, r *http.Request) {
	user := userID(r)
	h.store.MoveToCartFromWishlist(user, chi.URLParam(r, "productId"))
	h.writeCart(w, user)
}

// GetWishlist handles GET /api/wishlist
func (h *CartHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	items := h.store.WishlistItems(userID(r))
	if items == nil {
		items = []models.WishlistLineItem{}
	}
	WriteJSON(w, http.StatusOK, items, h.logger)
}

// GetSummary handles GET /api/cart/summary?shipping=express
func (h *CartHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	method, ok := shippingMethodParam(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "Unknown shipping method", h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, h.store.Summary(userID(r), method), h.logger)
}

func (h *CartHandler) writeCart(w http.ResponseWriter, user string) {
	items := h.store.Items(user)
	if items == nil {
		items = []models.CartLineItem{}
	}
	WriteJSON(w, http.StatusOK, cartResponse{
		Items:   items,
		Summary: h.store.Summary(user, models.ShippingStandard),
	}, h.logger)
}

// shippingMethodParam reads the optional shipping query parameter,
// defaulting to standard.
func shippingMethodParam(r *http.Request) (models.ShippingMethod, bool) {
	raw := r.URL.Query().Get("shipping")
	if raw == "" {
		return models.ShippingStandard, true
	}
	method := models.ShippingMethod(raw)
	return method, method.IsValid()
}
