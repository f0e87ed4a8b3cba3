package interest_controller

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/desapego-dos-martins/desapego-backend/config"
	"github.com/desapego-dos-martins/desapego-backend/models"
	"github.com/desapego-dos-martins/desapego-backend/services"
)

// GetInterests godoc
// @Summary List interest requests
// @Description Visitors who asked about a product, newest first
// @Tags Admin - Interests
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (max 50)" default(20)
// @Param q query string false "Search by name, email or phone"
// @Param product_id query string false "Only requests for this product"
// @Success 200 {object} models.ApiResponse{data=[]models.InterestListRow,meta=models.Pagination}
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /admin/interests [get]
func (h *Handler) GetInterests(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	q := services.InterestQuery{
		Search: strings.TrimSpace(c.Query("q")),
		Page:   page,
		Limit:  limit,
	}
	if raw := c.Query("product_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
			return
		}
		q.ProductID = &id
	}

	ctx, cancel := config.WithTimeout(c.Request.Context())
	defer cancel()

	rows, total, err := h.catalog.ListInterests(ctx, q)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list interests")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch interest requests"))
		return
	}
	if rows == nil {
		rows = []models.InterestListRow{}
	}

	meta := &models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      int(total),
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Interest requests fetched successfully", rows, meta))
}
