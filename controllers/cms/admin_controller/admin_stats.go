package admin_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/desapego-dos-martins/desapego-backend/config"
	"github.com/desapego-dos-martins/desapego-backend/models"
)

// GetDashboardStats godoc
// @Summary Dashboard statistics
// @Description Product counts by status, total views, interested visitors, uncategorized products and push subscribers.
// @Tags Admin - Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=models.DashboardStats}
// @Failure 401 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /admin/dashboard [get]
func (h *Handler) GetDashboardStats(c *gin.Context) {
	ctx, cancel := config.WithTimeout(c.Request.Context())
	defer cancel()

	stats, err := h.catalog.DashboardStats(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to load dashboard stats")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch dashboard stats"))
		return
	}

	// The subscriber count is secondary; the dashboard still loads without it.
	if n, err := h.subscribers.Count(ctx); err != nil {
		h.log.Warn().Err(err).Msg("failed to count push subscribers")
	} else {
		stats.Subscribers = n
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Dashboard stats fetched successfully", stats))
}
