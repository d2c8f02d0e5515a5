package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopadmin/shopadmin-golang/internal/models"
)

// CreateOrderRequest is the JSON body for POST /api/orders: the order fields
// plus its line items, created as one atomic unit.
type CreateOrderRequest struct {
	models.CreateOrderInput
	Items []models.CreateOrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// GetOrders is the handler for GET /api/orders.
func (h *Handlers) GetOrders(c *gin.Context) {
	orders, err := h.Store.GetOrders()
	if err != nil {
		storeError(c, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	c.JSON(http.StatusOK, orders)
}

// GetOrder is the handler for GET /api/orders/:id. The response merges the
// order with its customer and line items (each joined with its product).
func (h *Handlers) GetOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	detail, err := h.Store.GetOrderWithItems(id)
	if err != nil {
		storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// GetRecentOrders is the handler for GET /api/orders/recent. The optional
// "limit" query parameter caps the list (default 4).
func (h *Handlers) GetRecentOrders(c *gin.Context) {
	limit := 4
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	recent, err := h.Store.GetRecentOrders(limit)
	if err != nil {
		storeError(c, err)
		return
	}
	if recent == nil {
		recent = []models.RecentOrder{}
	}

	c.JSON(http.StatusOK, recent)
}

// CreateOrder is the handler for POST /api/orders. The order number is
// generated; a failure on any item leaves no order behind.
func (h *Handlers) CreateOrder(c *gin.Context) {
	var input CreateOrderRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.Store.CreateOrder(input.CreateOrderInput, input.Items)
	if err != nil {
		createError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// UpdateOrderStatus is the handler for PATCH /api/orders/:id/status.
func (h *Handlers) UpdateOrderStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var input models.UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.Store.UpdateOrderStatus(id, input.Status)
	if err != nil {
		storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}
