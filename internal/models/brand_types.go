package models

import "time"

// Brand is the model for the 'brands' table.
type Brand struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Logo        *string   `json:"logo,omitempty" db:"logo"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// CreateBrandInput defines the JSON input for creating a brand.
type CreateBrandInput struct {
	Name        string  `json:"name" binding:"required"`
	Logo        *string `json:"logo"`
	Description *string `json:"description"`
}

// UpdateBrandInput defines the JSON input for partial brand updates.
type UpdateBrandInput struct {
	Name        *string `json:"name"`
	Logo        *string `json:"logo"`
	Description *string `json:"description"`
}
