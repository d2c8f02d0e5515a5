package models

import "time"

// Review status values (closed set).
const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

// ValidReviewStatus reports whether s is one of the allowed review states.
func ValidReviewStatus(s string) bool {
	switch s {
	case ReviewStatusPending, ReviewStatusApproved, ReviewStatusRejected:
		return true
	}
	return false
}

// ProductReview is the model for the 'product_reviews' table.
type ProductReview struct {
	ID         int64     `json:"id" db:"id"`
	ProductID  int64     `json:"productId" db:"product_id"`
	CustomerID int64     `json:"customerId" db:"customer_id"`
	Rating     int       `json:"rating" db:"rating"`
	Comment    string    `json:"comment" db:"comment"`
	Status     string    `json:"status" db:"status"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// CreateProductReviewInput defines the JSON input for submitting a review.
type CreateProductReviewInput struct {
	ProductID  int64  `json:"productId" binding:"required"`
	CustomerID int64  `json:"customerId" binding:"required"`
	Rating     int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment    string `json:"comment" binding:"required"`
}
