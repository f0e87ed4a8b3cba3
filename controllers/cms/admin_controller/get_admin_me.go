package admin_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/desapego-dos-martins/desapego-backend/middleware"
	"github.com/desapego-dos-martins/desapego-backend/models"
)

// GetAdminMe godoc
// @Summary Current admin
// @Description Who the bearer token belongs to. The admin panel calls it to check a session is still valid.
// @Tags Admin - Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=services.Admin}
// @Failure 401 {object} models.ApiResponse
// @Router /admin/me [get]
func (h *Handler) GetAdminMe(c *gin.Context) {
	admin, ok := middleware.AdminFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Admin fetched successfully", admin))
}
