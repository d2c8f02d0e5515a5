package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopadmin/shopadmin-golang/internal/models"
)

// GetProducts is the handler for GET /api/products. It returns the table
// projection the admin UI renders: formatted price, resolved category name
// and the derived stock label folded into the status column's sibling field.
func (h *Handlers) GetProducts(c *gin.Context) {
	products, err := h.Store.GetProducts()
	if err != nil {
		storeError(c, err)
		return
	}

	// Resolve category names in one pass instead of a lookup per row.
	categories, err := h.Store.GetCategories()
	if err != nil {
		storeError(c, err)
		return
	}
	categoryNames := make(map[int64]string, len(categories))
	for _, category := range categories {
		categoryNames[category.ID] = category.Name
	}

	views := make([]models.ProductListView, 0, len(products))
	for _, product := range products {
		categoryName := "Uncategorized"
		if product.CategoryID != nil {
			if name, ok := categoryNames[*product.CategoryID]; ok {
				categoryName = name
			}
		}
		views = append(views, models.ProductListView{
			ID:         product.ID,
			Name:       product.Name,
			Price:      models.FormatMoney(product.Price),
			Category:   categoryName,
			Stock:      product.Stock,
			StockLabel: models.StockLabel(product.Stock),
			Status:     product.Status,
			CreatedAt:  product.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, views)
}

// GetProduct is the handler for GET /api/products/:id.
func (h *Handlers) GetProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	product, err := h.Store.GetProduct(id)
	if err != nil {
		storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// GetTopSellingProducts is the handler for GET /api/products/top-selling.
// The optional "limit" query parameter caps the list (default 5).
func (h *Handlers) GetTopSellingProducts(c *gin.Context) {
	limit := 5
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	top, err := h.Store.GetTopSellingProducts(limit)
	if err != nil {
		storeError(c, err)
		return
	}
	if top == nil {
		top = []models.TopSellingProduct{}
	}

	c.JSON(http.StatusOK, top)
}

// CreateProduct is the handler for POST /api/products.
func (h *Handlers) CreateProduct(c *gin.Context) {
	var input models.CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.Store.CreateProduct(input)
	if err != nil {
		createError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// UpdateProduct is the handler for PUT /api/products/:id. Absent fields are
// left untouched.
func (h *Handlers) UpdateProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var input models.UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.Store.UpdateProduct(id, input)
	if err != nil {
		storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct is the handler for DELETE /api/products/:id. Hard delete.
func (h *Handlers) DeleteProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	deleted, err := h.Store.DeleteProduct(id)
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
