package filter_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/desapego-dos-martins/desapego-backend/config"
	"github.com/desapego-dos-martins/desapego-backend/models"
)

// GetFilterMetadata godoc
// @Summary Get filter metadata
// @Description Availability counts, categories and the price range for the storefront filter panel
// @Tags Storefront - Categories
// @Produce json
// @Success 200 {object} models.ApiResponse{data=models.FilterMetadata}
// @Failure 500 {object} models.ApiResponse
// @Router /filters [get]
func (h *Handler) GetFilterMetadata(c *gin.Context) {
	ctx, cancel := config.WithTimeout(c.Request.Context())
	defer cancel()

	// Each goroutine writes a distinct field.
	var metadata models.FilterMetadata
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		availability, err := h.catalog.Availability(gctx)
		metadata.Availability = availability
		return err
	})
	g.Go(func() error {
		categories, err := h.catalog.ListCategories(gctx)
		metadata.Categories = categories
		return err
	})
	g.Go(func() error {
		priceRange, err := h.catalog.PriceRange(gctx)
		metadata.PriceRange = priceRange
		return err
	})

	if err := g.Wait(); err != nil {
		h.log.Error().Err(err).Msg("failed to fetch filter metadata")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch filter metadata"))
		return
	}
	if metadata.Categories == nil {
		metadata.Categories = []models.CategoryWithCount{}
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Filter metadata fetched", metadata))
}
