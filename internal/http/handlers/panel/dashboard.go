package panel

import (
	"time"

	"github.com/cashere-pos/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboard 经营统计
func (h *Handler) GetDashboard(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	stats, err := h.DashboardService.Stats(ownerID, time.Now())
	if err != nil {
		respondError(c, response.CodeInternal, "error.dashboard_failed", err)
		return
	}
	response.Success(c, stats)
}
