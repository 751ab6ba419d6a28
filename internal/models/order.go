package models

import "gorm.io/gorm"

// Order lifecycle statuses.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Payment settlement statuses.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusPaid      = "paid"
	PaymentStatusFailed    = "failed"
	PaymentStatusCancelled = "cancelled"
)

// PaymentMethodRazorpay is the only supported payment method.
const PaymentMethodRazorpay = "razorpay"

// Order is a placed customer order. Identity, contact, address and amount
// fields are immutable once created; only Status and PaymentStatus change.
type Order struct {
	ID              string      `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID          *string     `json:"user_id" gorm:"type:varchar(36);index"`
	CustomerName    string      `json:"customer_name" gorm:"type:varchar(100)" validate:"required,max=100"`
	CustomerEmail   string      `json:"customer_email" gorm:"type:varchar(255)" validate:"required,email"`
	CustomerPhone   string      `json:"customer_phone" gorm:"type:varchar(20)" validate:"required,max=20"`
	ShippingAddress string      `json:"shipping_address" validate:"required"`
	City            string      `json:"city" gorm:"type:varchar(100)" validate:"required,max=100"`
	State           string      `json:"state" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	ZipCode         string      `json:"zip_code" gorm:"type:varchar(20)" validate:"required,max=20"`
	Landmark        string      `json:"landmark" gorm:"type:varchar(200)" validate:"omitempty,max=200"`
	TotalAmount     float64     `json:"total_amount"`
	PaymentMethod   string      `json:"payment_method" gorm:"type:varchar(20)"`
	Status          string      `json:"status" gorm:"type:varchar(20)"`
	PaymentStatus   string      `json:"payment_status" gorm:"type:varchar(20)"`
	Items           []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	gorm.Model                  // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// OrderItem is a denormalized snapshot of a cart line taken at checkout.
// Name, price and image are copied by value so later catalog edits cannot
// alter historical orders.
type OrderItem struct {
	ID           string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID      string  `json:"order_id" gorm:"type:varchar(36);index"`
	ProductName  string  `json:"product_name" gorm:"type:varchar(200)"`
	ProductPrice float64 `json:"product_price"`
	ProductImage string  `json:"product_image" gorm:"type:varchar(500)"`
	Quantity     int     `json:"quantity"`
	gorm.Model           // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// TotalPrice is computed from the snapshot, never stored.
func (oi *OrderItem) TotalPrice() float64 {
	return oi.ProductPrice * float64(oi.Quantity)
}
