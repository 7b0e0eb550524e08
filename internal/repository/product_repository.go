package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/pawmart/storefront-backend/internal/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByCategory(ctx context.Context, category string) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
}

// InMemoryProductRepository implements ProductRepository with in-memory storage
type InMemoryProductRepository struct {
	products []models.Product
	byID     map[string]models.Product
}

// NewInMemoryProductRepository creates a new in-memory product repository
// seeded with the storefront catalog.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	products := []models.Product{
		{ID: "p1", Name: "Premium Dry Dog Food 10kg", Price: 45.99, Brand: "Pedigree", Category: "food", Rating: 4.6, Image: "/images/products/dog-food-10kg.jpg"},
		{ID: "p2", Name: "Grain-Free Cat Food 5kg", Price: 32.50, Brand: "Whiskas", Category: "food", Rating: 4.4, Image: "/images/products/cat-food-5kg.jpg"},
		{ID: "p3", Name: "Salmon Treats for Cats", Price: 8.99, Brand: "Sheba", Category: "food", Rating: 4.8, Image: "/images/products/salmon-treats.jpg"},
		{ID: "p4", Name: "Rope Chew Toy", Price: 12.49, Brand: "KONG", Category: "toys", Rating: 4.3, Image: "/images/products/rope-toy.jpg"},
		{ID: "p5", Name: "Interactive Feather Wand", Price: 9.99, Brand: "PetSafe", Category: "toys", Rating: 4.1, Image: "/images/products/feather-wand.jpg"},
		{ID: "p6", Name: "Orthopedic Dog Bed (Large)", Price: 89.00, Brand: "FurHaven", Category: "accessories", Rating: 4.7, Image: "/images/products/dog-bed-large.jpg"},
		{ID: "p7", Name: "Adjustable Cat Harness", Price: 18.75, Brand: "Rabbitgoo", Category: "accessories", Rating: 4.2, Image: "/images/products/cat-harness.jpg"},
		{ID: "p8", Name: "Stainless Steel Bowl Set", Price: 21.99, Brand: "AmazonBasics", Category: "accessories", Rating: 4.5, Image: "/images/products/bowl-set.jpg"},
		{ID: "p9", Name: "Full Grooming Session", Price: 60.00, Brand: "PawMart Care", Category: "services", Rating: 4.9, Image: "/images/services/grooming.jpg"},
		{ID: "p10", Name: "Vet Home Visit", Price: 120.00, Brand: "PawMart Care", Category: "services", Rating: 4.8, Image: "/images/services/vet-visit.jpg"},
	}

	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	return &InMemoryProductRepository{
		products: products,
		byID:     byID,
	}
}

// GetAll returns all products in catalog order
func (r *InMemoryProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	products := make([]models.Product, len(r.products))
	copy(products, r.products)
	return products, nil
}

// GetByCategory returns all products in the given category (case-insensitive)
func (r *InMemoryProductRepository) GetByCategory(ctx context.Context, category string) ([]models.Product, error) {
	matched := make([]models.Product, 0)
	for _, p := range r.products {
		if strings.EqualFold(p.Category, category) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// GetByID returns a product by its ID
func (r *InMemoryProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	product, exists := r.byID[id]
	if !exists {
		return nil, ErrProductNotFound
	}
	return &product, nil
}
