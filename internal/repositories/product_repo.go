package repositories

import (
	"arostore/internal/models"
)

// ProductRepository defines the read-side interface over the catalog.
// Catalog administration happens elsewhere; the storefront only browses
// and seeds.
type ProductRepository interface {
	// GetAll lists in-stock products, optionally filtered by a name search
	// and/or a category id.
	GetAll(search, categoryID string) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	GetCategories() ([]models.Category, error)
}
