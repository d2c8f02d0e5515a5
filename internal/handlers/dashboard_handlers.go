package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats is the handler for GET /api/dashboard/stats. All four
// counters are computed from live data: paid-order revenue, active
// customers, total orders and refunds still awaiting a decision.
func (h *Handlers) GetDashboardStats(c *gin.Context) {
	stats, err := h.Store.GetDashboardStats()
	if err != nil {
		storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
