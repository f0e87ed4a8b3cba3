package product_controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/desapego-dos-martins/desapego-backend/config"
	"github.com/desapego-dos-martins/desapego-backend/models"
	"github.com/desapego-dos-martins/desapego-backend/services"
	"github.com/desapego-dos-martins/desapego-backend/utils"
)

// RegisterInterest godoc
// @Summary Register interest in a product
// @Description Stores the visitor's contact and returns a WhatsApp link with a prefilled message about the product.
// @Tags Storefront - Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body models.RegisterInterestRequest true "Contact"
// @Success 201 {object} models.ApiResponse{data=models.InterestResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse "Product already sold"
// @Failure 429 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /products/{id}/interest [post]
func (h *Handler) RegisterInterest(c *gin.Context) {
	var req models.RegisterInterestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}

	product, ok := h.visibleProduct(c)
	if !ok {
		return
	}
	if product.Status == models.StatusSold {
		c.JSON(http.StatusConflict, models.ErrorResponse(c, "Product already sold"))
		return
	}

	ctx, cancel := config.WithTimeout(c.Request.Context())
	defer cancel()

	interest := models.InterestedUser{
		ProductID: product.ID,
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Message:   strings.TrimSpace(req.Message),
	}
	if err := h.catalog.RegisterInterest(ctx, &interest); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
			return
		}
		h.log.Error().Err(err).Str("product_id", product.ID.String()).Msg("failed to register interest")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to register interest"))
		return
	}

	h.log.Info().Str("product_id", product.ID.String()).Str("product", product.Title).Msg("interest registered")

	link := utils.WhatsappURL(h.whatsappNumber, utils.InterestMessage(h.siteName, product.Title, utils.FormatBRL(product.Price)))
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Interest registered successfully", models.InterestResponse{WhatsappURL: link}))
}
