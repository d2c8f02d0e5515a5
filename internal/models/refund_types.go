package models

import "time"

// Refund status values (closed set).
const (
	RefundStatusPending  = "pending"
	RefundStatusApproved = "approved"
	RefundStatusRejected = "rejected"
)

// ValidRefundStatus reports whether s is one of the allowed refund states.
func ValidRefundStatus(s string) bool {
	switch s {
	case RefundStatusPending, RefundStatusApproved, RefundStatusRejected:
		return true
	}
	return false
}

// Refund is the model for the 'refunds' table.
// ProcessedDate stays nil while the refund is pending and is stamped only
// when it reaches a terminal status (approved/rejected).
type Refund struct {
	ID            int64      `json:"id" db:"id"`
	OrderID       int64      `json:"orderId" db:"order_id"`
	CustomerID    int64      `json:"customerId" db:"customer_id"`
	Amount        float64    `json:"amount" db:"amount"`
	Reason        string     `json:"reason" db:"reason"`
	Status        string     `json:"status" db:"status"`
	Notes         *string    `json:"notes,omitempty" db:"notes"`
	RequestDate   time.Time  `json:"requestDate" db:"request_date"`
	ProcessedDate *time.Time `json:"processedDate,omitempty" db:"processed_date"`
}

// CreateRefundInput defines the JSON input for requesting a refund.
type CreateRefundInput struct {
	OrderID    int64   `json:"orderId" binding:"required"`
	CustomerID int64   `json:"customerId" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	Reason     string  `json:"reason" binding:"required"`
	Notes      *string `json:"notes"`
}

// UpdateRefundStatusInput defines the JSON input for processing a refund.
type UpdateRefundStatusInput struct {
	Status string  `json:"status" binding:"required"`
	Notes  *string `json:"notes"`
}

// RefundSettings is the singleton refund-policy row (id fixed at 1).
type RefundSettings struct {
	ID               int64     `json:"id" db:"id"`
	TimeLimit        int       `json:"timeLimit" db:"time_limit"`
	RestockingFee    float64   `json:"restockingFee" db:"restocking_fee"`
	AutoApproveBelow *float64  `json:"autoApproveBelow,omitempty" db:"auto_approve_below"`
	EligibleStatuses []string  `json:"eligibleStatuses" db:"eligible_statuses"`
	RefundPolicy     string    `json:"refundPolicy" db:"refund_policy"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`
}

// UpdateRefundSettingsInput defines the JSON input for PUT /api/refund-settings.
// Nil fields are left untouched; if no row exists yet the update creates it.
type UpdateRefundSettingsInput struct {
	TimeLimit        *int     `json:"timeLimit" binding:"omitempty,gte=0"`
	RestockingFee    *float64 `json:"restockingFee" binding:"omitempty,gte=0"`
	AutoApproveBelow *float64 `json:"autoApproveBelow"`
	EligibleStatuses []string `json:"eligibleStatuses" binding:"omitempty,dive,oneof=pending shipped delivered cancelled"`
	RefundPolicy     *string  `json:"refundPolicy"`
}
