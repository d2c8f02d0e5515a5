package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopadmin/shopadmin-golang/internal/models"
)

// GetSiteSettings is the handler for GET /api/site-settings.
func (h *Handlers) GetSiteSettings(c *gin.Context) {
	settings, err := h.Store.GetSiteSettings()
	if err != nil {
		storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSiteSettings is the handler for PUT /api/site-settings. The
// singleton row is created on first update if it does not exist yet;
// absent fields keep their stored values.
func (h *Handlers) UpdateSiteSettings(c *gin.Context) {
	var input models.UpdateSiteSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.Store.UpdateSiteSettings(input)
	if err != nil {
		storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}
