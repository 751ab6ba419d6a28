package repositories

import (
	"errors"
	"fmt"

	"arostore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// Create writes one order row plus one row per order item inside a single
// transaction. A failure on any item write rolls the whole order back, so an
// order can never be left without the items that back its total.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		items := order.Items
		order.Items = nil
		if err := tx.Create(order).Error; err != nil {
			order.Items = items
			return fmt.Errorf("failed to create order: %w", err)
		}
		order.Items = items

		for i := range order.Items {
			if err := tx.Create(&order.Items[i]).Error; err != nil {
				return fmt.Errorf("failed to create order item %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

// GetByIDForUser retrieves an order with its items, only if it is owned by
// the given user. Misses and ownership mismatches are indistinguishable.
func (r *GORMOrderRepository) GetByIDForUser(id, userID string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").
		First(&order, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order %s: %w", id, err)
	}
	return &order, nil
}

// GetByUser retrieves all orders placed by a user, newest first.
func (r *GORMOrderRepository) GetByUser(userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get orders for user: %w", err)
	}
	return orders, nil
}

// UpdateStatus sets the fulfillment status of an order.
func (r *GORMOrderRepository) UpdateStatus(id, status string) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update order status for %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	return nil
}

// UpdatePaymentStatus sets the payment settlement status of an order.
func (r *GORMOrderRepository) UpdatePaymentStatus(id, status string) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Update("payment_status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update payment status for %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	return nil
}
