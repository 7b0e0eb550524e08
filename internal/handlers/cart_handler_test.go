package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/pawmart/storefront-backend/internal/cart"
	"github.com/pawmart/storefront-backend/internal/repository"
	"github.com/pawmart/storefront-backend/internal/service"
	"github.com/pawmart/storefront-backend/pkg/logger"
)

func newCartRouter() (*chi.Mux, *cart.Store) {
	log := logger.New("error")
	repo := repository.NewInMemoryProductRepository()
	svc := service.NewProductService(repo)
	store := cart.NewStore(log)
	handler := NewCartHandler(store, svc, log)

	r := chi.NewRouter()
	r.Get("/api/cart", handler.GetCart)
	r.Get("/api/cart/summary", handler.GetSummary)
	r.Post("/api/cart/items", handler.AddItem)
	r.Put("/api/cart/items/{productId}", handler.UpdateItem)
	r.Delete("/api/cart/items/{productId}", handler.RemoveItem)
	r.Delete("/api/cart", handler.ClearCart)
	r.Post("/api/cart/items/{productId}/wishlist", handler.MoveToWishlist)
	r.Get("/api/wishlist", handler.GetWishlist)
	r.Post("/api/wishlist/{productId}/cart", handler.MoveToCart)
	return r, store
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "u1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddItem(t *testing.T) {
	r, store := newCartRouter()

	w := doJSON(t, r, http.MethodPost, "/api/cart/items", `{"productId":"p1","quantity":2}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp cartResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].Quantity != 2 {
		t.Errorf("items = %+v, want one p1 line with quantity 2", resp.Items)
	}
	if resp.Summary.ItemCount != 2 {
		t.Errorf("summary item count = %d, want 2", resp.Summary.ItemCount)
	}

	if items := store.Items("u1"); len(items) != 1 {
		t.Errorf("store items = %+v, want one line", items)
	}
}

func TestAddItem_UnknownProduct(t *testing.T) {
	r, _ := newCartRouter()

	w := doJSON(t, r, http.MethodPost, "/api/cart/items", `{"productId":"p999","quantity":1}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestUpdateAndRemoveItem(t *testing.T) {
	r, store := newCartRouter()
	doJSON(t, r, http.MethodPost, "/api/cart/items", `{"productId":"p1","quantity":1}`)

	w := doJSON(t, r, http.MethodPut, "/api/cart/items/p1", `{"quantity":4}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected status 200, got %d", w.Code)
	}
	if items := store.Items("u1"); items[0].Quantity != 4 {
		t.Errorf("quantity = %d, want 4", items[0].Quantity)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/cart/items/p1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("remove: expected status 200, got %d", w.Code)
	}
	if items := store.Items("u1"); len(items) != 0 {
		t.Errorf("items = %+v, want empty", items)
	}
}

func TestGetSummary_ExpressShipping(t *testing.T) {
	r, _ := newCartRouter()
	doJSON(t, r, http.MethodPost, "/api/cart/items", `{"productId":"p1","quantity":2}`)

	w := doJSON(t, r, http.MethodGet, "/api/cart/summary?shipping=express", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var summary struct {
		Subtotal float64 `json:"subtotal"`
		Shipping float64 `json:"shipping"`
		Tax      float64 `json:"tax"`
		Total    float64 `json:"total"`
	}
	if err := json.NewDecoder(w.Body).Decode(&summary); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	// p1 is 45.99: subtotal 91.98, shipping 50, tax 7.36, total 149.34
	if summary.Subtotal != 91.98 || summary.Shipping != 50 || summary.Tax != 7.36 || summary.Total != 149.34 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestGetSummary_UnknownShippingMethod(t *testing.T) {
	r, _ := newCartRouter()

	w := doJSON(t, r, http.MethodGet, "/api/cart/summary?shipping=drone", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestWishlistFlow(t *testing.T) {
	r, store := newCartRouter()
	doJSON(t, r, http.MethodPost, "/api/cart/items", `{"productId":"p1","quantity":3}`)

	w := doJSON(t, r, http.MethodPost, "/api/cart/items/p1/wishlist", "")
	if w.Code != http.StatusOK {
		t.Fatalf("move to wishlist: expected status 200, got %d", w.Code)
	}
	if items := store.Items("u1"); len(items) != 0 {
		t.Errorf("cart = %+v, want empty after move", items)
	}
	if wl := store.WishlistItems("u1"); len(wl) != 1 || wl[0].Quantity != 1 {
		t.Errorf("wishlist = %+v, want single entry with quantity 1", wl)
	}

	w = doJSON(t, r, http.MethodPost, "/api/wishlist/p1/cart", "")
	if w.Code != http.StatusOK {
		t.Fatalf("move to cart: expected status 200, got %d", w.Code)
	}
	if wl := store.WishlistItems("u1"); len(wl) != 0 {
		t.Errorf("wishlist = %+v, want empty after move back", wl)
	}
	if items := store.Items("u1"); len(items) != 1 || items[0].Quantity != 1 {
		t.Errorf("cart = %+v, want single p1 line", items)
	}
}

func TestClearCart(t *testing.T) {
	r, store := newCartRouter()
	doJSON(t, r, http.MethodPost, "/api/cart/items", `{"productId":"p1","quantity":1}`)
	doJSON(t, r, http.MethodPost, "/api/cart/items", `{"productId":"p2","quantity":1}`)

	w := doJSON(t, r, http.MethodDelete, "/api/cart", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if items := store.Items("u1"); len(items) != 0 {
		t.Errorf("items = %+v, want empty", items)
	}
}

func TestCartsAreKeyedByUser(t *testing.T) {
	r, store := newCartRouter()
	doJSON(t, r, http.MethodPost, "/api/cart/items", `{"productId":"p1","quantity":1}`)

	// A request without X-User-ID lands on the shared guest cart.
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp cartResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Items) != 0 {
		t.Errorf("guest cart = %+v, want empty", resp.Items)
	}
	if items := store.Items("u1"); len(items) != 1 {
		t.Errorf("u1 cart = %+v, want one line", items)
	}
}
