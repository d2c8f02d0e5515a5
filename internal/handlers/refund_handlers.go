package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopadmin/shopadmin-golang/internal/models"
)

// GetRefunds is the handler for GET /api/refunds.
func (h *Handlers) GetRefunds(c *gin.Context) {
	refunds, err := h.Store.GetRefunds()
	if err != nil {
		storeError(c, err)
		return
	}
	if refunds == nil {
		refunds = []models.Refund{}
	}

	c.JSON(http.StatusOK, refunds)
}

// GetRefund is the handler for GET /api/refunds/:id.
func (h *Handlers) GetRefund(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	refund, err := h.Store.GetRefund(id)
	if err != nil {
		storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, refund)
}

// CreateRefund is the handler for POST /api/refunds. New requests always
// start pending with no processed date.
func (h *Handlers) CreateRefund(c *gin.Context) {
	var input models.CreateRefundInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	refund, err := h.Store.CreateRefund(input)
	if err != nil {
		createError(c, err)
		return
	}

	c.JSON(http.StatusCreated, refund)
}

// UpdateRefundStatus is the handler for PATCH /api/refunds/:id/status.
// Moving to approved or rejected stamps the processed date.
func (h *Handlers) UpdateRefundStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var input models.UpdateRefundStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	refund, err := h.Store.UpdateRefundStatus(id, input.Status, input.Notes)
	if err != nil {
		storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, refund)
}

// GetRefundSettings is the handler for GET /api/refund-settings.
func (h *Handlers) GetRefundSettings(c *gin.Context) {
	settings, err := h.Store.GetRefundSettings()
	if err != nil {
		storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateRefundSettings is the handler for PUT /api/refund-settings. The
// singleton row is created on first update if it does not exist yet.
func (h *Handlers) UpdateRefundSettings(c *gin.Context) {
	var input models.UpdateRefundSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.Store.UpdateRefundSettings(input)
	if err != nil {
		storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}
