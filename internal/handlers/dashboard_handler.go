package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nithishcb360/recruit-sub001/internal/services"
	"github.com/nithishcb360/recruit-sub001/internal/utils"
)

type DashboardHandler struct {
	BaseHandler
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:      NewBaseHandler(logger),
		dashboardService: dashboardService,
	}
}

// Overview returns the headline counts plus the recent activity feed. When
// the backend is unreachable the response carries local counts with the
// degraded flag set instead of an error.
func (h *DashboardHandler) Overview(c *gin.Context) {
	overview, err := h.dashboardService.Overview(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

func (h *DashboardHandler) RecentActivities(c *gin.Context) {
	limit := h.parseIntQuery(c, "limit", 0)
	activities := h.dashboardService.RecentActivities(limit)

	c.JSON(http.StatusOK, gin.H{
		"count":   len(activities),
		"results": activities,
	})
}
