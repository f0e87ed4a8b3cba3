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

// UpdateProductStatus godoc
// @Summary Change a product's status
// @Description available, sold or hidden. Hidden products disappear from the storefront.
// @Tags CMS - Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body models.UpdateProductStatusRequest true "New status"
// @Success 200 {object} models.ApiResponse{data=models.Product}
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /admin/products/{id}/status [patch]
func (h *Handler) UpdateProductStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
		return
	}

	var req models.UpdateProductStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Status must be one of: available, sold, hidden"))
		return
	}

	ctx, cancel := config.WithTimeout(c.Request.Context())
	defer cancel()

	before, err := h.catalog.UpdateProductStatus(ctx, id, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
			return
		}
		h.log.Error().Err(err).Str("product_id", id.String()).Msg("failed to update product status")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update product status"))
		return
	}

	after := before
	after.Status = req.Status

	middleware.SetActivity(c, middleware.Activity{
		Action:       models.ActionUpdateProductStatus,
		ResourceType: models.ResourceTypeProduct,
		ResourceID:   id.String(),
		ResourceName: before.Title,
		Before:       gin.H{"status": before.Status},
		After:        gin.H{"status": after.Status},
	})
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product status updated successfully", after))
}
