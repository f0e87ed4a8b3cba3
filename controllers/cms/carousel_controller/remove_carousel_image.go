package carousel_controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/desapego-dos-martins/desapego-backend/config"
	"github.com/desapego-dos-martins/desapego-backend/middleware"
	"github.com/desapego-dos-martins/desapego-backend/models"
	"github.com/desapego-dos-martins/desapego-backend/services"
)

// RemoveCarouselImage godoc
// @Summary Remove a homepage carousel image
// @Description Removes the slide showing imageUrl and deletes the stored image.
// @Tags CMS - Carousel
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.RemoveCarouselImageRequest true "Slide to remove"
// @Success 200 {object} models.ApiResponse{data=models.CarouselImage}
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /admin/carousel/remove [post]
func (h *Handler) RemoveCarouselImage(c *gin.Context) {
	var req models.RemoveCarouselImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	ctx, cancel := config.WithTimeout(c.Request.Context())
	defer cancel()

	removed, err := h.carousel.RemoveCarouselImage(ctx, req.ImageURL)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Carousel image not found"))
			return
		}
		h.log.Error().Err(err).Str("image_url", req.ImageURL).Msg("failed to remove carousel image")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to remove carousel image"))
		return
	}

	assetCtx, assetCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer assetCancel()
	h.deleteAsset(assetCtx, removed.PublicID)

	middleware.SetActivity(c, middleware.Activity{
		Action:       models.ActionRemoveCarouselImage,
		ResourceType: models.ResourceTypeCarousel,
		ResourceID:   removed.ID.String(),
		ResourceName: removed.ImageURL,
		Before:       removed,
	})
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Carousel image removed successfully", removed))
}
