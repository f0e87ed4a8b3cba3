package category_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/desapego-dos-martins/desapego-backend/config"
	"github.com/desapego-dos-martins/desapego-backend/middleware"
	"github.com/desapego-dos-martins/desapego-backend/models"
	"github.com/desapego-dos-martins/desapego-backend/services"
)

// CreateCategory godoc
// @Summary Create a category
// @Description The slug is derived from the name (lowercase, accents removed, spaces to hyphens), the same way the storefront derives it from the category badge. An explicit slug is optional and must equal the derived one.
// @Tags CMS - Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateCategoryRequest true "Category"
// @Success 201 {object} models.ApiResponse{data=models.Category}
// @Failure 400 {object} models.ApiResponse "Invalid name or slug does not match the name"
// @Failure 401 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse "Slug already in use"
// @Failure 500 {object} models.ApiResponse
// @Router /admin/categories [post]
func (h *Handler) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	ctx, cancel := config.WithTimeout(c.Request.Context())
	defer cancel()

	category, err := h.catalog.CreateCategory(ctx, req.Name, req.Slug)
	switch {
	case errors.Is(err, services.ErrInvalidSlug):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Category name must contain letters or digits"))
		return
	case errors.Is(err, services.ErrSlugMismatch):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Slug must match the category name: "+err.Error()))
		return
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, models.ErrorResponse(c, "A category with this slug already exists"))
		return
	case err != nil:
		h.log.Error().Err(err).Str("name", req.Name).Msg("failed to create category")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create category"))
		return
	}

	middleware.SetActivity(c, middleware.Activity{
		Action:       models.ActionCreateCategory,
		ResourceType: models.ResourceTypeCategory,
		ResourceID:   category.ID.String(),
		ResourceName: category.Name,
		After:        category,
	})
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Category created successfully", category))
}
