package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/desapego-dos-martins/desapego-backend/config"
	"github.com/desapego-dos-martins/desapego-backend/controllers/cms/admin_controller"
	"github.com/desapego-dos-martins/desapego-backend/controllers/cms/analytics_controller"
	"github.com/desapego-dos-martins/desapego-backend/controllers/cms/carousel_controller"
	"github.com/desapego-dos-martins/desapego-backend/controllers/cms/category_controller"
	"github.com/desapego-dos-martins/desapego-backend/controllers/cms/interest_controller"
	"github.com/desapego-dos-martins/desapego-backend/controllers/cms/notification_controller"
	"github.com/desapego-dos-martins/desapego-backend/controllers/cms/product_controller"
	store_carousel "github.com/desapego-dos-martins/desapego-backend/controllers/ecommerce/carousel_controller"
	store_category "github.com/desapego-dos-martins/desapego-backend/controllers/ecommerce/category_controller"
	"github.com/desapego-dos-martins/desapego-backend/controllers/ecommerce/filter_controller"
	store_product "github.com/desapego-dos-martins/desapego-backend/controllers/ecommerce/product_controller"
	"github.com/desapego-dos-martins/desapego-backend/controllers/ecommerce/push_controller"
	"github.com/desapego-dos-martins/desapego-backend/logger"
	"github.com/desapego-dos-martins/desapego-backend/middleware"
	"github.com/desapego-dos-martins/desapego-backend/routes/cms_routes"
	"github.com/desapego-dos-martins/desapego-backend/routes/ecommerce_routes"
)

func newRouter(cfg config.Config, a *app, log zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinMiddleware(log))
	router.Use(a.metrics.GinMiddleware())
	router.Use(cors.New(corsCfg))

	limit := middleware.RateLimiter(a.limiter, cfg.RateLimit, time.Minute, logger.Component("ratelimit"))
	activity := middleware.ActivityLogging(a.activity)

	storeProducts := store_product.NewHandler(a.catalog, cfg.SiteName, cfg.WhatsappNumber, logger.Component("storefront"))
	storeCategories := store_category.NewHandler(a.catalog, cfg.SiteName, logger.Component("storefront"))

	// Register API routes
	api := router.Group("/api")

	ecommerce_routes.SetupStorefrontRoutes(api, storeProducts, storeCategories,
		filter_controller.NewHandler(a.catalog, logger.Component("storefront")),
		limit,
	)
	ecommerce_routes.SetupCarouselRoutes(api, store_carousel.NewHandler(a.carousel, logger.Component("storefront")))
	ecommerce_routes.SetupPushRoutes(api,
		push_controller.NewHandler(a.pushStore, cfg.VAPIDPublicKey, logger.Component("push")),
		notification_controller.NewHandler(a.broadcaster, a.metrics, logger.Component("push")),
		limit,
		middleware.AdminAuth(a.auth, log, middleware.FlagUnauthorized),
		activity,
	)
	cms_routes.SetupAdminRoutes(api, cms_routes.Handlers{
		Admin:      admin_controller.NewHandler(a.catalog, a.pushStore, a.activity, logger.Component("admin")),
		Products:   product_controller.NewHandler(a.catalog, a.images, logger.Component("admin")),
		Categories: category_controller.NewHandler(a.catalog, logger.Component("admin")),
		Analytics:  analytics_controller.NewHandler(a.catalog, logger.Component("admin")),
		Interests:  interest_controller.NewHandler(a.catalog, logger.Component("admin")),
		Carousel:   carousel_controller.NewHandler(a.carousel, a.images, logger.Component("admin")),
	}, middleware.AdminAuth(a.auth, log, middleware.EnvelopeUnauthorized), activity)

	// Server-rendered pages
	ecommerce_routes.SetupCategoryPageRoutes(&router.RouterGroup, storeCategories)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(a.metrics.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}
