package repositories

import (
	"errors"
	"fmt"

	"arostore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetBySession retrieves all cart items for a session, oldest first, with
// their products preloaded.
func (r *GORMCartRepository) GetBySession(sessionKey string) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.Preload("Product").
		Where("session_key = ?", sessionKey).
		Order("created_at asc").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get cart items for session: %w", err)
	}
	return items, nil
}

// Add inserts a cart item, or accumulates quantity on the existing row for
// the same (session, product) pair. Concurrent adds for the same pair may
// race; last write wins, which is acceptable for cart state.
func (r *GORMCartRepository) Add(sessionKey, productID string, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.First(&item, "session_key = ? AND product_id = ?", sessionKey, productID).Error
	if err == nil {
		item.Quantity += quantity
		if err := r.db.Save(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to update cart item quantity: %w", err)
		}
		return r.getByID(item.ID, sessionKey)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up cart item: %w", err)
	}

	item = models.CartItem{
		ID:         uuid.New().String(),
		SessionKey: sessionKey,
		ProductID:  productID,
		Quantity:   quantity,
	}
	if err := r.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to create cart item: %w", err)
	}
	return r.getByID(item.ID, sessionKey)
}

// SetQuantity updates the quantity of a cart item within the caller's
// session. A quantity of zero or less removes the item.
func (r *GORMCartRepository) SetQuantity(itemID, sessionKey string, quantity int) error {
	if quantity <= 0 {
		return r.Remove(itemID, sessionKey)
	}
	res := r.db.Model(&models.CartItem{}).
		Where("id = ? AND session_key = ?", itemID, sessionKey).
		Update("quantity", quantity)
	if res.Error != nil {
		return fmt.Errorf("failed to update cart item %s: %w", itemID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item %s: %w", itemID, ErrNotFound)
	}
	return nil
}

// Remove deletes a cart item within the caller's session.
func (r *GORMCartRepository) Remove(itemID, sessionKey string) error {
	res := r.db.Where("id = ? AND session_key = ?", itemID, sessionKey).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return fmt.Errorf("failed to remove cart item %s: %w", itemID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item %s: %w", itemID, ErrNotFound)
	}
	return nil
}

// Clear deletes every cart item belonging to the session. Clearing an
// already-empty cart is not an error.
func (r *GORMCartRepository) Clear(sessionKey string) error {
	if err := r.db.Where("session_key = ?", sessionKey).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart for session: %w", err)
	}
	return nil
}

// Count returns the number of cart lines for a session.
func (r *GORMCartRepository) Count(sessionKey string) (int64, error) {
	var count int64
	err := r.db.Model(&models.CartItem{}).
		Where("session_key = ?", sessionKey).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count cart items: %w", err)
	}
	return count, nil
}

func (r *GORMCartRepository) getByID(itemID, sessionKey string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Preload("Product").
		First(&item, "id = ? AND session_key = ?", itemID, sessionKey).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart item %s: %w", itemID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cart item %s: %w", itemID, err)
	}
	return &item, nil
}
