package product_controller

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/desapego-dos-martins/desapego-backend/middleware"
	"github.com/desapego-dos-martins/desapego-backend/models"
	"github.com/desapego-dos-martins/desapego-backend/services"
)

// CreateProduct godoc
// @Summary Create a product
// @Description Multipart form: product fields plus up to 10 files in "images". The first image becomes the primary one. Images are resized and converted to webp on upload.
// @Tags CMS - Products
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param price formData number true "Price in BRL"
// @Param category_id formData string false "Category ID"
// @Param featured formData bool false "Show first on the storefront"
// @Param images formData file false "Product photos"
// @Success 201 {object} models.ApiResponse{data=models.Product}
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /admin/products [post]
func (h *Handler) CreateProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 60*time.Second)
	defer cancel()

	var form models.CreateProductForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	product := models.Product{
		ID:          uuid.Must(uuid.NewV7()),
		Title:       strings.TrimSpace(form.Title),
		Description: strings.TrimSpace(form.Description),
		Price:       form.Price,
		Featured:    form.Featured,
		Status:      models.StatusAvailable,
	}
	if form.CategoryID != "" {
		id, err := uuid.Parse(form.CategoryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid category_id"))
			return
		}
		product.CategoryID = &id
	}

	var files []*multipart.FileHeader
	if mf, err := c.MultipartForm(); err == nil {
		files = mf.File["images"]
	}
	if len(files) > MaxImages {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Too many images"))
		return
	}

	folder := services.ProductFolder(product.ID.String())
	if len(files) > 0 {
		uploaded, err := services.UploadAll(ctx, h.images, files, folder)
		if err != nil {
			h.log.Error().Err(err).Str("folder", folder).Msg("image upload failed")
			h.cleanup(folder)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to upload images"))
			return
		}
		for i, img := range uploaded {
			product.Images = append(product.Images, models.ProductImage{
				ProductID: product.ID,
				ImageURL:  img.URL,
				ThumbURL:  img.ThumbURL,
				PublicID:  img.PublicID,
				IsPrimary: i == 0,
			})
		}
	}

	if err := h.catalog.CreateProduct(ctx, &product); err != nil {
		if len(files) > 0 {
			h.cleanup(folder)
		}
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Category not found"))
			return
		}
		h.log.Error().Err(err).Msg("failed to create product")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create product"))
		return
	}

	h.log.Info().Str("product_id", product.ID.String()).Int("images", len(product.Images)).Msg("product created")
	middleware.SetActivity(c, middleware.Activity{
		Action:       models.ActionCreateProduct,
		ResourceType: models.ResourceTypeProduct,
		ResourceID:   product.ID.String(),
		ResourceName: product.Title,
		After:        product,
	})
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Product created successfully", product))
}

// cleanup removes a product's photo folder. Failures only leave orphans behind.
func (h *Handler) cleanup(folder string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := h.images.DeleteFolder(ctx, folder); err != nil {
		h.log.Warn().Err(err).Str("folder", folder).Msg("orphaned image folder left behind")
	}
}
