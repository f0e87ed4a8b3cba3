package analytics_controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/desapego-dos-martins/desapego-backend/config"
	"github.com/desapego-dos-martins/desapego-backend/models"
)

// GetTopProducts godoc
// @Summary Get top products
// @Description Most viewed products with their interest counts and interest rate (requests per 100 views)
// @Tags Admin - Analytics
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max products (default 6, max 20)"
// @Success 200 {object} models.ApiResponse{data=[]models.TopProduct}
// @Failure 401 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /admin/analytics/top-products [get]
func (h *Handler) GetTopProducts(c *gin.Context) {
	limit := DefaultTopProducts
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 {
		limit = min(l, MaxTopProducts)
	}

	ctx, cancel := config.WithTimeout(c.Request.Context())
	defer cancel()

	top, err := h.catalog.TopProducts(ctx, limit)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to fetch top products")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch top products"))
		return
	}
	if top == nil {
		top = []models.TopProduct{}
	}

	h.log.Debug().Int("products", len(top)).Msg("top products")
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Top products retrieved successfully", top))
}
