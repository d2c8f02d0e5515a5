package models

import "time"

// Ticket status values (closed set).
const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in_progress"
	TicketStatusResolved   = "resolved"
	TicketStatusClosed     = "closed"
)

// Ticket priority values.
const (
	TicketPriorityLow    = "low"
	TicketPriorityMedium = "medium"
	TicketPriorityHigh   = "high"
	TicketPriorityUrgent = "urgent"
)

// ValidTicketStatus reports whether s is one of the allowed ticket states.
func ValidTicketStatus(s string) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// SupportTicket is the model for the 'support_tickets' table.
type SupportTicket struct {
	ID           int64     `json:"id" db:"id"`
	TicketNumber string    `json:"ticketNumber" db:"ticket_number"`
	CustomerID   int64     `json:"customerId" db:"customer_id"`
	Subject      string    `json:"subject" db:"subject"`
	Message      string    `json:"message" db:"message"`
	OrderID      *int64    `json:"orderId,omitempty" db:"order_id"`
	Status       string    `json:"status" db:"status"`
	Priority     string    `json:"priority" db:"priority"`
	AssignedTo   *int64    `json:"assignedTo,omitempty" db:"assigned_to"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// TicketReply is the model for the 'ticket_replies' table.
// Exactly one of UserID (staff) or CustomerID is set per reply.
type TicketReply struct {
	ID         int64     `json:"id" db:"id"`
	TicketID   int64     `json:"ticketId" db:"ticket_id"`
	UserID     *int64    `json:"userId,omitempty" db:"user_id"`
	CustomerID *int64    `json:"customerId,omitempty" db:"customer_id"`
	Message    string    `json:"message" db:"message"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// CreateSupportTicketInput defines the JSON input for opening a ticket.
// The ticket number is generated at creation.
type CreateSupportTicketInput struct {
	CustomerID int64  `json:"customerId" binding:"required"`
	Subject    string `json:"subject" binding:"required"`
	Message    string `json:"message" binding:"required"`
	OrderID    *int64 `json:"orderId"`
	Status     string `json:"status" binding:"omitempty,oneof=open in_progress resolved closed"`
	Priority   string `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	AssignedTo *int64 `json:"assignedTo"`
}

// CreateTicketReplyInput defines the JSON input for replying to a ticket.
// The ticket id comes from the URL, not the body.
type CreateTicketReplyInput struct {
	TicketID   int64  `json:"-"`
	UserID     *int64 `json:"userId"`
	CustomerID *int64 `json:"customerId"`
	Message    string `json:"message" binding:"required"`
}

// HasOneAuthor reports whether exactly one author side is set.
func (in *CreateTicketReplyInput) HasOneAuthor() bool {
	return (in.UserID != nil) != (in.CustomerID != nil)
}

// AssignTicketInput defines the JSON input for assigning a ticket.
type AssignTicketInput struct {
	UserID int64 `json:"userId" binding:"required"`
}

// UpdateStatusInput is the shared body for the status PATCH endpoints.
type UpdateStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// SupportTicketDetail is a ticket merged with its replies and customer.
type SupportTicketDetail struct {
	SupportTicket
	Customer *Customer     `json:"customer,omitempty"`
	Replies  []TicketReply `json:"replies"`
}
