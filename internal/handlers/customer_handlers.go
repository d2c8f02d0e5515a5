package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopadmin/shopadmin-golang/internal/models"
)

// GetCustomers is the handler for GET /api/customers. Each row carries the
// derived order count and lifetime spend for the customers table.
func (h *Handlers) GetCustomers(c *gin.Context) {
	summaries, err := h.Store.GetCustomerSummaries()
	if err != nil {
		storeError(c, err)
		return
	}
	if summaries == nil {
		summaries = []models.CustomerSummary{}
	}

	c.JSON(http.StatusOK, summaries)
}

// GetCustomer is the handler for GET /api/customers/:id.
func (h *Handlers) GetCustomer(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	customer, err := h.Store.GetCustomer(id)
	if err != nil {
		storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// CreateCustomer is the handler for POST /api/customers.
func (h *Handlers) CreateCustomer(c *gin.Context) {
	var input models.CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.Store.CreateCustomer(input)
	if err != nil {
		createError(c, err)
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// UpdateCustomer is the handler for PUT /api/customers/:id.
func (h *Handlers) UpdateCustomer(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var input models.UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.Store.UpdateCustomer(id, input)
	if err != nil {
		storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer is the handler for DELETE /api/customers/:id.
func (h *Handlers) DeleteCustomer(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	deleted, err := h.Store.DeleteCustomer(id)
	if err != nil {
		storeError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}

	c.Status(http.StatusNoContent)
}
