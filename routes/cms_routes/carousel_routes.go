package cms_routes

import (
	"github.com/gin-gonic/gin"

	"github.com/desapego-dos-martins/desapego-backend/controllers/cms/carousel_controller"
)

// SetupCarouselRoutes expects rg to be the authenticated admin group.
func SetupCarouselRoutes(rg *gin.RouterGroup, h *carousel_controller.Handler) {
	carousel := rg.Group("/carousel")
	{
		carousel.POST("", h.AddCarouselImages)
		carousel.POST("/remove", h.RemoveCarouselImage) // body: {"imageUrl": "..."}
	}
}
