package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopadmin/shopadmin-golang/internal/models"
	"github.com/shopadmin/shopadmin-golang/internal/store"
)

// GetSupportTickets is the handler for GET /api/support-tickets, freshest
// first.
func (h *Handlers) GetSupportTickets(c *gin.Context) {
	tickets, err := h.Store.GetSupportTickets()
	if err != nil {
		storeError(c, err)
		return
	}
	if tickets == nil {
		tickets = []models.SupportTicket{}
	}

	c.JSON(http.StatusOK, tickets)
}

// GetSupportTicket is the handler for GET /api/support-tickets/:id. The
// response merges the ticket with its customer and full reply thread.
func (h *Handlers) GetSupportTicket(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ticket, err := h.Store.GetSupportTicket(id)
	if err != nil {
		storeError(c, err)
		return
	}

	replies, err := h.Store.GetTicketReplies(id)
	if err != nil {
		storeError(c, err)
		return
	}

	detail := models.SupportTicketDetail{SupportTicket: *ticket, Replies: replies}
	customer, err := h.Store.GetCustomer(ticket.CustomerID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		storeError(c, err)
		return
	}
	detail.Customer = customer

	c.JSON(http.StatusOK, detail)
}

// CreateSupportTicket is the handler for POST /api/support-tickets. The
// ticket number is generated at creation.
func (h *Handlers) CreateSupportTicket(c *gin.Context) {
	var input models.CreateSupportTicketInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket, err := h.Store.CreateSupportTicket(input)
	if err != nil {
		createError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ticket)
}

// UpdateTicketStatus is the handler for PATCH /api/support-tickets/:id/status.
func (h *Handlers) UpdateTicketStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var input models.UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket, err := h.Store.UpdateTicketStatus(id, input.Status)
	if err != nil {
		storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// AssignTicket is the handler for PATCH /api/support-tickets/:id/assign.
func (h *Handlers) AssignTicket(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var input models.AssignTicketInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket, err := h.Store.AssignTicket(id, input.UserID)
	if err != nil {
		storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// AddTicketReply is the handler for POST /api/support-tickets/:id/replies.
// A reply has exactly one author: a staff user or the customer, never both,
// never neither. Posting a reply also bumps the ticket's freshness.
func (h *Handlers) AddTicketReply(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var input models.CreateTicketReplyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.TicketID = id

	if !input.HasOneAuthor() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reply must have exactly one author: userId or customerId"})
		return
	}

	reply, err := h.Store.AddTicketReply(input)
	if err != nil {
		storeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reply)
}
