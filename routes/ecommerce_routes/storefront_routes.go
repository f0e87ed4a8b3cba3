package ecommerce_routes

import (
	"github.com/gin-gonic/gin"

	store_carousel "github.com/desapego-dos-martins/desapego-backend/controllers/ecommerce/carousel_controller"
	store_category "github.com/desapego-dos-martins/desapego-backend/controllers/ecommerce/category_controller"
	"github.com/desapego-dos-martins/desapego-backend/controllers/ecommerce/filter_controller"
	store_product "github.com/desapego-dos-martins/desapego-backend/controllers/ecommerce/product_controller"
)

// SetupStorefrontRoutes mounts the public catalog API. limit guards the
// endpoints that write on behalf of anonymous visitors.
func SetupStorefrontRoutes(api *gin.RouterGroup, products *store_product.Handler, categories *store_category.Handler, filters *filter_controller.Handler, limit gin.HandlerFunc) {
	// Product routes
	p := api.Group("/products")
	{
		p.GET("", products.GetStorefrontProducts)                 // ?search=&category=
		p.GET("/:id", products.GetStorefrontProductByID)          // Single product, counts a view
		p.POST("/:id/interest", limit, products.RegisterInterest) // WhatsApp deep link
	}

	// Category and filter routes
	api.GET("/categories", categories.GetCategories)
	api.GET("/filters", filters.GetFilterMetadata)
}

// SetupCarouselRoutes mounts the public homepage carousel.
func SetupCarouselRoutes(api *gin.RouterGroup, carousel *store_carousel.Handler) {
	api.GET("/carousel", carousel.GetCarouselImages)
}

// SetupCategoryPageRoutes mounts the server-rendered category pages.
func SetupCategoryPageRoutes(router *gin.RouterGroup, categories *store_category.Handler) {
	router.GET("/categoria/:slug", categories.GetCategoryPage)
}
