package ecommerce_routes

import (
	"github.com/gin-gonic/gin"

	"github.com/desapego-dos-martins/desapego-backend/controllers/cms/notification_controller"
	"github.com/desapego-dos-martins/desapego-backend/controllers/ecommerce/push_controller"
)

// SetupPushRoutes mounts the subscription endpoints and the admin-only
// broadcast. auth must answer 401 in the {success:false} shape.
func SetupPushRoutes(api *gin.RouterGroup, subs *push_controller.Handler, notify *notification_controller.Handler, limit, auth, activity gin.HandlerFunc) {
	// ════════════════════════════════════════════════════════════
	// Public Routes
	// ════════════════════════════════════════════════════════════
	api.GET("/vapid-public-key", subs.GetVAPIDPublicKey)
	api.POST("/save-subscription", limit, subs.SaveSubscription)

	// ════════════════════════════════════════════════════════════
	// Protected Routes (Auth + Activity Logging)
	// ════════════════════════════════════════════════════════════
	api.POST("/send-notification", auth, activity, notify.SendNotification)
}
