package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopadmin/shopadmin-golang/internal/models"
)

// GetProductReviews is the handler for GET /api/product-reviews.
func (h *Handlers) GetProductReviews(c *gin.Context) {
	reviews, err := h.Store.GetProductReviews()
	if err != nil {
		storeError(c, err)
		return
	}
	if reviews == nil {
		reviews = []models.ProductReview{}
	}

	c.JSON(http.StatusOK, reviews)
}

// CreateProductReview is the handler for POST /api/product-reviews. New
// reviews always start in moderation.
func (h *Handlers) CreateProductReview(c *gin.Context) {
	var input models.CreateProductReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.Store.CreateProductReview(input)
	if err != nil {
		createError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// UpdateReviewStatus is the handler for PATCH /api/product-reviews/:id/status
// (moderation: approve or reject).
func (h *Handlers) UpdateReviewStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var input models.UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.Store.UpdateReviewStatus(id, input.Status)
	if err != nil {
		storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

// DeleteReview is the handler for DELETE /api/product-reviews/:id.
func (h *Handlers) DeleteReview(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	deleted, err := h.Store.DeleteReview(id)
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
