package service

import (
	"context"

	"github.com/pawmart/storefront-backend/internal/models"
	"github.com/pawmart/storefront-backend/internal/repository"
)

// ProductService handles business logic for the product catalog
type ProductService struct {
	repo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// ListProducts returns all available products, optionally filtered by category
func (s *ProductService) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	if category != "" {
		return s.repo.GetByCategory(ctx, category)
	}
	return s.repo.GetAll(ctx)
}

// GetProduct returns a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}
