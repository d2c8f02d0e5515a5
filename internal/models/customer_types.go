package models

import "time"

// Customer status values.
const (
	CustomerStatusActive   = "active"
	CustomerStatusInactive = "inactive"
)

// Customer is the model for the 'customers' table.
// Address is free-form structured data (stored as JSON in the database).
type Customer struct {
	ID               int64          `json:"id" db:"id"`
	Name             string         `json:"name" db:"name"`
	Email            string         `json:"email" db:"email"`
	Phone            *string        `json:"phone,omitempty" db:"phone"`
	Avatar           *string        `json:"avatar,omitempty" db:"avatar"`
	Status           string         `json:"status" db:"status"`
	Address          map[string]any `json:"address,omitempty" db:"address"`
	RegistrationDate time.Time      `json:"registrationDate" db:"registration_date"`
}

// CreateCustomerInput defines the JSON input for creating a customer.
type CreateCustomerInput struct {
	Name    string         `json:"name" binding:"required"`
	Email   string         `json:"email" binding:"required,email"`
	Phone   *string        `json:"phone"`
	Avatar  *string        `json:"avatar"`
	Status  string         `json:"status" binding:"omitempty,oneof=active inactive"`
	Address map[string]any `json:"address"`
}

// UpdateCustomerInput defines the JSON input for partial customer updates.
type UpdateCustomerInput struct {
	Name    *string        `json:"name"`
	Email   *string        `json:"email" binding:"omitempty,email"`
	Phone   *string        `json:"phone"`
	Avatar  *string        `json:"avatar"`
	Status  *string        `json:"status" binding:"omitempty,oneof=active inactive"`
	Address map[string]any `json:"address"`
}

// CustomerSummary is the customers-page projection: the customer row plus
// order count and lifetime spend derived from the orders table.
type CustomerSummary struct {
	Customer
	OrderCount int    `json:"orderCount"`
	TotalSpent string `json:"totalSpent"`
}
