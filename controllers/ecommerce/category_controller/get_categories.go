package category_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/desapego-dos-martins/desapego-backend/config"
	"github.com/desapego-dos-martins/desapego-backend/models"
)

// GetCategories godoc
// @Summary List categories
// @Description Every category with its count of visible products, sorted by name.
// @Tags Storefront - Categories
// @Produce json
// @Success 200 {object} models.ApiResponse{data=[]models.CategoryWithCount}
// @Failure 500 {object} models.ApiResponse
// @Router /categories [get]
func (h *Handler) GetCategories(c *gin.Context) {
	ctx, cancel := config.WithTimeout(c.Request.Context())
	defer cancel()

	categories, err := h.catalog.ListCategories(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list categories")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch categories"))
		return
	}
	if categories == nil {
		categories = []models.CategoryWithCount{}
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Categories fetched successfully", categories))
}
