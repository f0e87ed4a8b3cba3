package cms_routes

import (
	"github.com/gin-gonic/gin"

	"github.com/desapego-dos-martins/desapego-backend/controllers/cms/product_controller"
)

// SetupProductRoutes expects rg to be the authenticated admin group.
func SetupProductRoutes(rg *gin.RouterGroup, h *product_controller.Handler) {
	products := rg.Group("/products")
	{
		products.POST("", h.CreateProduct)
		products.PATCH("/:id/status", h.UpdateProductStatus)
		products.DELETE("/:id", h.DeleteProduct)
	}
}
