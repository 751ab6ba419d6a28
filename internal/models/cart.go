package models

import "time"

// CartItem is a line in a session-scoped shopping cart. One row exists per
// (session key, product); re-adding the same product accumulates quantity.
// No soft delete: removed rows must actually vacate the unique index so the
// session can add the product again later.
type CartItem struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	SessionKey string    `json:"session_key" gorm:"type:varchar(100);uniqueIndex:idx_cart_session_product" validate:"required"`
	ProductID  string    `json:"product_id" gorm:"type:varchar(36);uniqueIndex:idx_cart_session_product" validate:"required,uuid"`
	Product    Product   `json:"product" gorm:"foreignKey:ProductID"`
	Quantity   int       `json:"quantity" validate:"gte=1"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TotalPrice is the line total at the product's current catalog price.
func (ci *CartItem) TotalPrice() float64 {
	return ci.Product.Price * float64(ci.Quantity)
}
