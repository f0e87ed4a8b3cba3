package admin_controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/desapego-dos-martins/desapego-backend/config"
	"github.com/desapego-dos-martins/desapego-backend/models"
	"github.com/desapego-dos-martins/desapego-backend/services"
)

// GetAllAdminActivityLogs godoc
// @Summary Recent admin activity
// @Description Latest admin actions, newest first.
// @Tags Admin - Dashboard
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max entries (default 50, max 200)"
// @Success 200 {object} models.ApiResponse{data=[]models.ActivityLog}
// @Failure 401 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /admin/activity [get]
func (h *Handler) GetAllAdminActivityLogs(c *gin.Context) {
	limit := services.DefaultActivityLimit
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = min(parsed, services.MaxActivityLimit)
		}
	}

	ctx, cancel := config.WithTimeout(c.Request.Context())
	defer cancel()

	logs, err := h.activity.Recent(ctx, limit)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to fetch activity logs")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch activity logs"))
		return
	}
	if logs == nil {
		logs = []models.ActivityLog{}
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Activity logs fetched successfully", logs))
}
