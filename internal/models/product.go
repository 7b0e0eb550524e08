package models

// Product represents a catalog item (food, toy, accessory or service)
// available in the storefront. Products are owned by the catalog and
// read-only from the cart's perspective.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image,omitempty"`
	Brand    string  `json:"brand,omitempty"`
	Category string  `json:"category,omitempty"`
	Rating   float64 `json:"rating,omitempty"`
}
