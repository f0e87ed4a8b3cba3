package category_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/desapego-dos-martins/desapego-backend/config"
	"github.com/desapego-dos-martins/desapego-backend/middleware"
	"github.com/desapego-dos-martins/desapego-backend/models"
	"github.com/desapego-dos-martins/desapego-backend/services"
)

// DeleteCategory godoc
// @Summary Delete a category
// @Description Its products are kept and become uncategorized; they then only show under "all" on the storefront.
// @Tags CMS - Categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /admin/categories/{id} [delete]
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid category ID"))
		return
	}

	ctx, cancel := config.WithTimeout(c.Request.Context())
	defer cancel()

	deleted, err := h.catalog.DeleteCategory(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Category not found"))
			return
		}
		h.log.Error().Err(err).Str("category_id", id.String()).Msg("failed to delete category")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to delete category"))
		return
	}

	middleware.SetActivity(c, middleware.Activity{
		Action:       models.ActionDeleteCategory,
		ResourceType: models.ResourceTypeCategory,
		ResourceID:   id.String(),
		ResourceName: deleted.Name,
		Before:       deleted,
	})
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Category deleted successfully", gin.H{"id": id}))
}
