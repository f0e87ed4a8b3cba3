package product_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/desapego-dos-martins/desapego-backend/models"
	"github.com/desapego-dos-martins/desapego-backend/services"
)

// Handler serves the public product endpoints.
type Handler struct {
	catalog        services.Catalog
	siteName       string
	whatsappNumber string
	log            zerolog.Logger
}

func NewHandler(catalog services.Catalog, siteName, whatsappNumber string, log zerolog.Logger) *Handler {
	return &Handler{catalog: catalog, siteName: siteName, whatsappNumber: whatsappNumber, log: log}
}

// visibleProduct loads the product in :id, answering 400/404/500 itself.
// Hidden products do not exist for the storefront.
func (h *Handler) visibleProduct(c *gin.Context) (models.Product, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
		return models.Product{}, false
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
		return models.Product{}, false
	case err != nil:
		h.log.Error().Err(err).Str("product_id", id.String()).Msg("failed to fetch product")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch product"))
		return models.Product{}, false
	case product.Status == models.StatusHidden:
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
		return models.Product{}, false
	}
	return product, true
}
