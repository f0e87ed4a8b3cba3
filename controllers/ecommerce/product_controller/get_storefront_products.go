package product_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/desapego-dos-martins/desapego-backend/config"
	"github.com/desapego-dos-martins/desapego-backend/models"
	"github.com/desapego-dos-martins/desapego-backend/services"
)

// GetStorefrontProducts godoc
// @Summary List storefront products
// @Description Visible products, featured first then newest. search matches title, category and price the same way the live search does; category is a slug ("all" for every category).
// @Tags Storefront - Products
// @Produce json
// @Param search query string false "Search term"
// @Param category query string false "Category slug" default(all)
// @Success 200 {object} models.ApiResponse{data=[]models.ProductCard}
// @Failure 500 {object} models.ApiResponse
// @Router /products [get]
func (h *Handler) GetStorefrontProducts(c *gin.Context) {
	ctx, cancel := config.WithTimeout(c.Request.Context())
	defer cancel()

	products, err := h.catalog.ListProducts(ctx, services.ProductQuery{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	})
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list products")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch products"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Products fetched successfully", services.ProductCards(products)))
}
