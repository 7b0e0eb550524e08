package cart

import (
	"log/slog"
	"sync"

	"github.com/pawmart/storefront-backend/internal/models"
)

// Store is the single shared cart/wishlist store for the whole service.
// Every consuming handler is injected with the same instance, so there is
// exactly one copy of each user's cart state and nothing to keep in sync.
//
// All operations are synchronous, in-memory and safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	users  map[string]*userLists
	logger *slog.Logger
}

// userLists holds one user's cart and wishlist in insertion order.
type userLists struct {
	cart     []models.CartLineItem
	wishlist []models.WishlistLineItem
}

// NewStore creates an empty cart store.
func NewStore(logger *slog.Logger) *Store {
	return &Store{
		users:  make(map[string]*userLists),
		logger: logger,
	}
}

func (s *Store) lists(userID string) *userLists {
	u, ok := s.users[userID]
	if !ok {
		u = &userLists{}
		s.users[userID] = u
	}
	return u
}

// AddToCart inserts a line item for the product, or increments the
// existing line's quantity when the product is already in the cart.
// Quantities below 1 are clamped to 1.
func (s *Store) AddToCart(userID string, product models.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.lists(userID)
	for i := range u.cart {
		if u.cart[i].Product.ID == product.ID {
			u.cart[i].Quantity += quantity
			return
		}
	}
	u.cart = append(u.cart, models.CartLineItem{Product: product, Quantity: quantity})
}

// UpdateQuantity sets the quantity of an existing line item. A quantity
// below 1 removes the line instead. Unknown product ids are a silent
// no-op: the UI never constructs such a call under normal operation.
func (s *Store) UpdateQuantity(userID, productID string, quantity int) {
	if quantity < 1 {
		s.RemoveFromCart(userID, productID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.lists(userID)
	for i := range u.cart {
		if u.cart[i].Product.ID == productID {
			u.cart[i].Quantity = quantity
			return
		}
	}
	s.logger.Debug("update quantity for product not in cart", "user_id", userID, "product_id", productID)
}

// RemoveFromCart deletes the line item if present; no-op otherwise.
func (s *Store) RemoveFromCart(userID, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.lists(userID)
	for i := range u.cart {
		if u.cart[i].Product.ID == productID {
			u.cart = append(u.cart[:i], u.cart[i+1:]...)
			return
		}
	}
}

// MoveToWishlist atomically removes the product from the cart and adds it
// to the wishlist with quantity reset to 1. If the product is already
// wishlisted, the cart entry is simply dropped.
func (s *Store) MoveToWishlist(userID, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.lists(userID)
	var moved *models.Product
	for i := range u.cart {
		if u.cart[i].Product.ID == productID {
			p := u.cart[i].Product
			moved = &p
			u.cart = append(u.cart[:i], u.cart[i+1:]...)
			break
		}
	}
	if moved == nil {
		return
	}

	for i := range u.wishlist {
		if u.wishlist[i].Product.ID == productID {
			return // already saved, cart entry dropped
		}
	}
	u.wishlist = append(u.wishlist, models.WishlistLineItem{Product: *moved, Quantity: 1})
}

// MoveToCartFromWishlist removes the wishlist entry and puts the product
// back in the cart. An existing cart line is incremented by 1 rather than
// duplicated.
func (s *Store) MoveToCartFromWishlist(userID, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.lists(userID)
	var moved *models.Product
	for i := range u.wishlist {
		if u.wishlist[i].Product.ID == productID {
			p := u.wishlist[i].Product
			moved = &p
			u.wishlist = append(u.wishlist[:i], u.wishlist[i+1:]...)
			break
		}
	}
	if moved == nil {
		return
	}

	for i := range u.cart {
		if u.cart[i].Product.ID == productID {
			u.cart[i].Quantity++
			return
		}
	}
	u.cart = append(u.cart, models.CartLineItem{Product: *moved, Quantity: 1})
}

// ClearCart empties the cart collection unconditionally. The wishlist is
// untouched.
func (s *Store) ClearCart(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.lists(userID)
	u.cart = nil
}

// Items returns a copy of the user's cart line items.
func (s *Store) Items(userID string) []models.CartLineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil
	}
	items := make([]models.CartLineItem, len(u.cart))
	copy(items, u.cart)
	return items
}

// WishlistItems returns a copy of the user's wishlist entries.
func (s *Store) WishlistItems(userID string) []models.WishlistLineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil
	}
	items := make([]models.WishlistLineItem, len(u.wishlist))
	copy(items, u.wishlist)
	return items
}

// Summary recomputes the order summary for the user's current cart and
// the given shipping method. Never cached.
func (s *Store) Summary(userID string, method models.ShippingMethod) models.OrderSummary {
	return ComputeOrderSummary(s.Items(userID), method, 0)
}
