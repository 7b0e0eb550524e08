package models

// CartLineItem pairs a product with a purchase quantity.
// Quantity is always >= 1; a cart holds at most one line per product id.
type CartLineItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// WishlistLineItem is a saved-for-later entry. Quantity is fixed at 1
// and not user-adjustable; a wishlist holds at most one entry per product id.
type WishlistLineItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// ShippingMethod selects one of the fixed-price delivery options.
type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
	ShippingNextDay  ShippingMethod = "nextDay"
)

// Cost returns the flat shipping fee for the method. The table is fixed
// and not configurable at runtime. Unknown methods cost 0.
func (m ShippingMethod) Cost() float64 {
	switch m {
	case ShippingStandard:
		return 30.00
	case ShippingExpress:
		return 50.00
	case ShippingNextDay:
		return 100.00
	default:
		return 0
	}
}

// IsValid reports whether the method is one of the supported options.
func (m ShippingMethod) IsValid() bool {
	switch m {
	case ShippingStandard, ShippingExpress, ShippingNextDay:
		return true
	}
	return false
}

// OrderSummary is the derived monetary breakdown for the current cart.
// It is recomputed on every cart mutation, never stored.
type OrderSummary struct {
	Subtotal  float64 `json:"subtotal"`
	Shipping  float64 `json:"shipping"`
	Tax       float64 `json:"tax"`
	Discount  float64 `json:"discount"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"itemCount"`
}
