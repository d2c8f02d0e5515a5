package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopadmin/shopadmin-golang/internal/models"
)

// --- Categories ---

// GetCategories is the handler for GET /api/categories. It assembles the
// stored adjacency list into a nested tree before responding.
func (h *Handlers) GetCategories(c *gin.Context) {
	categories, err := h.Store.GetCategories()
	if err != nil {
		storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, buildCategoryTree(categories))
}

// buildCategoryTree nests child categories under their parents. Orphans
// (parent missing) surface as roots rather than disappearing.
func buildCategoryTree(categories []models.Category) []models.Category {
	known := make(map[int64]bool, len(categories))
	for _, category := range categories {
		known[category.ID] = true
	}

	byParent := make(map[int64][]models.Category)
	var rootNodes []models.Category
	for _, category := range categories {
		if category.ParentID != nil && known[*category.ParentID] {
			byParent[*category.ParentID] = append(byParent[*category.ParentID], category)
			continue
		}
		rootNodes = append(rootNodes, category)
	}

	var attach func(node models.Category) models.Category
	attach = func(node models.Category) models.Category {
		node.Children = []models.Category{}
		for _, child := range byParent[node.ID] {
			node.Children = append(node.Children, attach(child))
		}
		return node
	}

	roots := []models.Category{}
	for _, root := range rootNodes {
		roots = append(roots, attach(root))
	}
	return roots
}

// GetCategory is the handler for GET /api/categories/:id.
func (h *Handlers) GetCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	category, err := h.Store.GetCategory(id)
	if err != nil {
		storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// CreateCategory is the handler for POST /api/categories. The slug is
// generated from the name server-side.
func (h *Handlers) CreateCategory(c *gin.Context) {
	var input models.CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.Store.CreateCategory(input)
	if err != nil {
		createError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// UpdateCategory is the handler for PUT /api/categories/:id.
func (h *Handlers) UpdateCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var input models.UpdateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.Store.UpdateCategory(id, input)
	if err != nil {
		storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// DeleteCategory is the handler for DELETE /api/categories/:id. Children of
// the deleted category are promoted to roots, never cascaded away.
func (h *Handlers) DeleteCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	deleted, err := h.Store.DeleteCategory(id)
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

// --- Brands ---

// GetBrands is the handler for GET /api/brands.
func (h *Handlers) GetBrands(c *gin.Context) {
	brands, err := h.Store.GetBrands()
	if err != nil {
		storeError(c, err)
		return
	}
	if brands == nil {
		brands = []models.Brand{}
	}

	c.JSON(http.StatusOK, brands)
}

// GetBrand is the handler for GET /api/brands/:id.
func (h *Handlers) GetBrand(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	brand, err := h.Store.GetBrand(id)
	if err != nil {
		storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, brand)
}

// CreateBrand is the handler for POST /api/brands.
func (h *Handlers) CreateBrand(c *gin.Context) {
	var input models.CreateBrandInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	brand, err := h.Store.CreateBrand(input)
	if err != nil {
		createError(c, err)
		return
	}

	c.JSON(http.StatusCreated, brand)
}

// UpdateBrand is the handler for PUT /api/brands/:id.
func (h *Handlers) UpdateBrand(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var input models.UpdateBrandInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	brand, err := h.Store.UpdateBrand(id, input)
	if err != nil {
		storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, brand)
}

// DeleteBrand is the handler for DELETE /api/brands/:id.
func (h *Handlers) DeleteBrand(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	deleted, err := h.Store.DeleteBrand(id)
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
