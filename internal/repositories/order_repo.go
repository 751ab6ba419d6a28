package repositories

import (
	"arostore/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// Create writes the order row and all of its item rows atomically.
	Create(order *models.Order) error
	// GetByIDForUser returns ErrNotFound both when the order does not exist
	// and when it belongs to another user.
	GetByIDForUser(id, userID string) (*models.Order, error)
	GetByUser(userID string) ([]models.Order, error)
	UpdateStatus(id, status string) error
	UpdatePaymentStatus(id, status string) error
}
