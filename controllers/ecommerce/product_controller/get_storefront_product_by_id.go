package product_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/desapego-dos-martins/desapego-backend/config"
	"github.com/desapego-dos-martins/desapego-backend/models"
)

// GetStorefrontProductByID godoc
// @Summary Get a storefront product
// @Description Product details with images. Each call counts as one view.
// @Tags Storefront - Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.ApiResponse{data=models.Product}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /products/{id} [get]
func (h *Handler) GetStorefrontProductByID(c *gin.Context) {
	product, ok := h.visibleProduct(c)
	if !ok {
		return
	}

	ctx, cancel := config.WithTimeout(c.Request.Context())
	defer cancel()

	// A lost view is not worth failing the page over.
	if views, err := h.catalog.IncrementViews(ctx, product.ID); err != nil {
		h.log.Warn().Err(err).Str("product_id", product.ID.String()).Msg("failed to increment views")
	} else {
		product.Views = views
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product fetched successfully", product))
}
