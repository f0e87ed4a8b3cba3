package push_controller

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/desapego-dos-martins/desapego-backend/models"
)

// GetVAPIDPublicKey godoc
// @Summary VAPID public key
// @Description The application server key browsers pass to pushManager.subscribe.
// @Tags Push
// @Produce json
// @Success 200 {object} models.VAPIDKeyResponse
// @Failure 503 {object} models.ApiResponse "Push is not configured"
// @Router /vapid-public-key [get]
func (h *Handler) GetVAPIDPublicKey(c *gin.Context) {
	if h.vapidPublicKey == "" {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Push notifications are not configured"))
		return
	}
	c.JSON(http.StatusOK, models.VAPIDKeyResponse{PublicKey: h.vapidPublicKey})
}

// endpointHost keeps push service tokens out of the logs.
func endpointHost(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil {
		return ""
	}
	return u.Host
}
