package carousel_controller

import (
	"context"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/desapego-dos-martins/desapego-backend/middleware"
	"github.com/desapego-dos-martins/desapego-backend/models"
	"github.com/desapego-dos-martins/desapego-backend/services"
)

// AddCarouselImages godoc
// @Summary Add homepage carousel images
// @Description Multipart form with up to 10 files in "images". New slides go after the existing ones, in upload order.
// @Tags CMS - Carousel
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param images formData file true "Slides"
// @Success 201 {object} models.ApiResponse{data=[]models.CarouselImage}
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /admin/carousel [post]
func (h *Handler) AddCarouselImages(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 60*time.Second)
	defer cancel()

	var files []*multipart.FileHeader
	if mf, err := c.MultipartForm(); err == nil {
		files = mf.File["images"]
	}
	switch {
	case len(files) == 0:
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "No images provided"))
		return
	case len(files) > MaxSlides:
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Too many images"))
		return
	}

	uploaded, err := services.UploadAll(ctx, h.images, files, services.CarouselFolder)
	if err != nil {
		h.log.Error().Err(err).Msg("carousel upload failed")
		h.cleanup(uploaded)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to upload images"))
		return
	}

	slides, err := h.carousel.AddCarouselImages(ctx, uploaded)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to save carousel images")
		h.cleanup(uploaded)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to save carousel images"))
		return
	}

	middleware.SetActivity(c, middleware.Activity{
		Action:       models.ActionAddCarouselImages,
		ResourceType: models.ResourceTypeCarousel,
		ResourceName: services.CarouselFolder,
		After:        slides,
	})
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Carousel images added successfully", slides))
}

// cleanup removes slides that were uploaded but never saved. The carousel
// folder is shared, so assets go one by one.
func (h *Handler) cleanup(uploaded []services.UploadedImage) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, img := range uploaded {
		h.deleteAsset(ctx, img.PublicID)
	}
}

func (h *Handler) deleteAsset(ctx context.Context, publicID string) {
	if err := h.images.Delete(ctx, publicID); err != nil {
		h.log.Warn().Err(err).Str("public_id", publicID).Msg("orphaned carousel image left behind")
	}
}
