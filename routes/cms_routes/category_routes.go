package cms_routes

import (
	"github.com/gin-gonic/gin"

	"github.com/desapego-dos-martins/desapego-backend/controllers/cms/category_controller"
)

// SetupCategoryRoutes expects rg to be the authenticated admin group.
func SetupCategoryRoutes(rg *gin.RouterGroup, h *category_controller.Handler) {
	category := rg.Group("/categories")
	{
		category.POST("", h.CreateCategory)
		category.DELETE("/:id", h.DeleteCategory)
	}
}
