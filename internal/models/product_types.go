package models

import (
	"fmt"
	"time"
)

// Product status values (closed set, enforced before any mutation).
const (
	ProductStatusDraft     = "draft"
	ProductStatusPublished = "published"
	ProductStatusArchived  = "archived"
)

// ValidProductStatus reports whether s is one of the allowed product states.
func ValidProductStatus(s string) bool {
	switch s {
	case ProductStatusDraft, ProductStatusPublished, ProductStatusArchived:
		return true
	}
	return false
}

// Product is the model for the 'products' table.
// Pointers are used for nullable columns so JSON serialization stays clean.
type Product struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	Stock       int       `json:"stock" db:"stock"`
	SKU         string    `json:"sku" db:"sku"`
	Image       *string   `json:"image,omitempty" db:"image"`
	Status      string    `json:"status" db:"status"`
	CategoryID  *int64    `json:"categoryId,omitempty" db:"category_id"`
	BrandID     *int64    `json:"brandId,omitempty" db:"brand_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// CreateProductInput defines the JSON input for creating a product.
type CreateProductInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Stock       int     `json:"stock" binding:"gte=0"`
	SKU         string  `json:"sku" binding:"required"`
	Image       *string `json:"image"`
	Status      string  `json:"status" binding:"omitempty,oneof=draft published archived"`
	CategoryID  *int64  `json:"categoryId"`
	BrandID     *int64  `json:"brandId"`
}

// UpdateProductInput defines the JSON input for partial product updates.
// Nil fields are left untouched.
type UpdateProductInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
	Stock       *int     `json:"stock" binding:"omitempty,gte=0"`
	SKU         *string  `json:"sku"`
	Image       *string  `json:"image"`
	Status      *string  `json:"status" binding:"omitempty,oneof=draft published archived"`
	CategoryID  *int64   `json:"categoryId"`
	BrandID     *int64   `json:"brandId"`
}

// ProductListView is the row shape for the products table in the UI.
// The price string, stock label and category name are derived at the read
// boundary, never stored.
type ProductListView struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Price      string    `json:"price"`
	Category   string    `json:"category"`
	Stock      int       `json:"stock"`
	StockLabel string    `json:"stockLabel"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TopSellingProduct is the dashboard projection for the best sellers card.
// SoldCount is the all-time unit total from order items; PercentageChange
// compares units sold in the trailing 30 days with the 30 days before that.
type TopSellingProduct struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Image            string  `json:"image"`
	SoldCount        int     `json:"soldCount"`
	Price            string  `json:"price"`
	PercentageChange float64 `json:"percentageChange"`
}

// StockLabel converts a stock level into the UI label.
// Thresholds: >10 In Stock, 1-10 Low Stock, 0 Out of Stock.
func StockLabel(stock int) string {
	switch {
	case stock > 10:
		return "In Stock"
	case stock > 0:
		return "Low Stock"
	default:
		return "Out of Stock"
	}
}

// FormatMoney renders an amount the way the dashboard cards expect it.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
