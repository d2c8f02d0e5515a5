package models

import "time"

// Category defines the struct for the 'categories' table.
// The tree is stored as a parent-id adjacency list; Children is populated
// at read time, never persisted.
type Category struct {
	ID        int64      `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Slug      string     `json:"slug" db:"slug"`
	ParentID  *int64     `json:"parentId,omitempty" db:"parent_id"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
	Children  []Category `json:"children,omitempty" db:"-"`
}

// CreateCategoryInput defines the JSON input for creating a category.
// The slug is generated server-side from the name.
type CreateCategoryInput struct {
	Name     string `json:"name" binding:"required"`
	ParentID *int64 `json:"parentId"`
}

// UpdateCategoryInput defines the JSON input for partial category updates.
type UpdateCategoryInput struct {
	Name     *string `json:"name"`
	ParentID *int64  `json:"parentId"`
}
