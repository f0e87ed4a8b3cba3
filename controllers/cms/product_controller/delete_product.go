package product_controller

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

// DeleteProduct godoc
// @Summary Delete a product
// @Description Removes the product, its image records and its photo folder.
// @Tags CMS - Products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /admin/products/{id} [delete]
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
		return
	}

	ctx, cancel := config.WithTimeout(c.Request.Context())
	defer cancel()

	deleted, err := h.catalog.DeleteProduct(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
			return
		}
		h.log.Error().Err(err).Str("product_id", id.String()).Msg("failed to delete product")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to delete product"))
		return
	}

	if len(deleted.Images) > 0 {
		h.cleanup(services.ProductFolder(id.String()))
	}

	middleware.SetActivity(c, middleware.Activity{
		Action:       models.ActionDeleteProduct,
		ResourceType: models.ResourceTypeProduct,
		ResourceID:   id.String(),
		ResourceName: deleted.Title,
		Before:       deleted,
	})
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product deleted successfully", gin.H{"id": id}))
}
