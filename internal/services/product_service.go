package services

import (
	"errors"
	"fmt"

	"arostore/internal/models"
	"arostore/internal/repositories"
)

// ProductService serves the read-only storefront catalog.
type ProductService struct {
	productRepo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo repositories.ProductRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
	}
}

// ListProducts returns in-stock products, optionally filtered by a name
// search and a category id.
func (s *ProductService) ListProducts(search, categoryID string) ([]models.Product, error) {
	products, err := s.productRepo.GetAll(search, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetProduct returns a single in-stock product. Out-of-stock products are
// hidden from the storefront like missing ones.
func (s *ProductService) GetProduct(id string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if !product.InStock {
		return nil, ErrNotFound
	}
	return product, nil
}

// ListCategories returns all categories for storefront filtering.
func (s *ProductService) ListCategories() ([]models.Category, error) {
	categories, err := s.productRepo.GetCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
