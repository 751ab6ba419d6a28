package repositories

import (
	"arostore/internal/models"
)

// CartRepository defines the interface for session-scoped cart data access.
// Every mutating operation is scoped to the caller's session key; a miss on
// another session's item is ErrNotFound, never a cross-session mutation.
type CartRepository interface {
	GetBySession(sessionKey string) ([]models.CartItem, error)
	Add(sessionKey, productID string, quantity int) (*models.CartItem, error)
	SetQuantity(itemID, sessionKey string, quantity int) error
	Remove(itemID, sessionKey string) error
	Clear(sessionKey string) error
	Count(sessionKey string) (int64, error)
}
