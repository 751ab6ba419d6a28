package models

import "gorm.io/gorm"

// Category groups products for storefront filtering.
type Category struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string `json:"name" gorm:"uniqueIndex;type:varchar(100)" validate:"required,max=100"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// Product represents a catalog product available in the store.
type Product struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	CategoryID  *string `json:"category_id" gorm:"type:varchar(36);index" validate:"omitempty,uuid"`
	Name        string  `json:"name" gorm:"type:varchar(200)" validate:"required,min=3,max=200"`
	Description string  `json:"description" validate:"omitempty,max=2000"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Image       string  `json:"image" gorm:"type:varchar(500)"`
	InStock     bool    `json:"in_stock" gorm:"default:true"`
	gorm.Model          // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
