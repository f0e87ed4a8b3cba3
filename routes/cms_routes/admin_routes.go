package cms_routes

import (
	"github.com/gin-gonic/gin"

	"github.com/desapego-dos-martins/desapego-backend/controllers/cms/admin_controller"
	"github.com/desapego-dos-martins/desapego-backend/controllers/cms/analytics_controller"
	"github.com/desapego-dos-martins/desapego-backend/controllers/cms/carousel_controller"
	"github.com/desapego-dos-martins/desapego-backend/controllers/cms/category_controller"
	"github.com/desapego-dos-martins/desapego-backend/controllers/cms/interest_controller"
	"github.com/desapego-dos-martins/desapego-backend/controllers/cms/product_controller"
)

// Handlers bundles the admin controllers.
type Handlers struct {
	Admin      *admin_controller.Handler
	Products   *product_controller.Handler
	Categories *category_controller.Handler
	Analytics  *analytics_controller.Handler
	Interests  *interest_controller.Handler
	Carousel   *carousel_controller.Handler
}

// SetupAdminRoutes mounts /admin. auth must reject anonymous callers;
// activity records every mutation made through the group.
func SetupAdminRoutes(rg *gin.RouterGroup, h Handlers, auth, activity gin.HandlerFunc) {
	// ════════════════════════════════════════════════════════════
	// Base Admin Group (Auth + Activity Logging)
	// ════════════════════════════════════════════════════════════

	admin := rg.Group("/admin")
	admin.Use(auth)
	admin.Use(activity)
	{
		admin.GET("/me", h.Admin.GetAdminMe)
		admin.GET("/dashboard", h.Admin.GetDashboardStats)
		admin.GET("/activity", h.Admin.GetAllAdminActivityLogs)
		admin.GET("/analytics/top-products", h.Analytics.GetTopProducts)
		admin.GET("/interests", h.Interests.GetInterests) // ?page=&limit=&q=&product_id=
	}

	SetupProductRoutes(admin, h.Products)
	SetupCategoryRoutes(admin, h.Categories)
	SetupCarouselRoutes(admin, h.Carousel)
}
