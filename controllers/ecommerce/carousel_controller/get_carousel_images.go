package carousel_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/desapego-dos-martins/desapego-backend/config"
	"github.com/desapego-dos-martins/desapego-backend/models"
)

// GetCarouselImages godoc
// @Summary List homepage carousel images
// @Description Slides in display order.
// @Tags Storefront - Carousel
// @Produce json
// @Success 200 {object} models.ApiResponse{data=[]models.CarouselImage}
// @Failure 500 {object} models.ApiResponse
// @Router /carousel [get]
func (h *Handler) GetCarouselImages(c *gin.Context) {
	ctx, cancel := config.WithTimeout(c.Request.Context())
	defer cancel()

	slides, err := h.carousel.ListCarouselImages(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list carousel images")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch carousel images"))
		return
	}
	if slides == nil {
		slides = []models.CarouselImage{}
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Carousel images fetched successfully", slides))
}
