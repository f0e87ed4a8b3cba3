package push_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/desapego-dos-martins/desapego-backend/config"
	"github.com/desapego-dos-martins/desapego-backend/models"
	"github.com/desapego-dos-martins/desapego-backend/push"
)

// SaveSubscription godoc
// @Summary Save a push subscription
// @Description Stores the browser's PushSubscription. Saving the same endpoint again replaces its keys; there is never more than one record per endpoint.
// @Tags Push
// @Accept json
// @Produce json
// @Param request body push.BrowserSubscription true "PushSubscription.toJSON()"
// @Success 200 {object} models.SubscriptionResponse
// @Failure 400 {object} models.SubscriptionResponse
// @Failure 429 {object} models.ApiResponse
// @Failure 500 {object} models.SubscriptionResponse
// @Router /save-subscription [post]
func (h *Handler) SaveSubscription(c *gin.Context) {
	var sub push.BrowserSubscription
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, models.SubscriptionResponse{Success: false, Error: "Invalid subscription"})
		return
	}

	ctx, cancel := config.WithTimeout(c.Request.Context())
	defer cancel()

	if err := push.SaveSubscription(ctx, h.store, sub, h.now()); err != nil {
		if errors.Is(err, push.ErrInvalidSubscription) {
			c.JSON(http.StatusBadRequest, models.SubscriptionResponse{Success: false, Error: err.Error()})
			return
		}
		h.log.Error().Err(err).Msg("failed to save subscription")
		c.JSON(http.StatusInternalServerError, models.SubscriptionResponse{Success: false, Error: "Failed to save subscription"})
		return
	}

	h.log.Info().Str("endpoint_host", endpointHost(sub.Endpoint)).Msg("subscription saved")
	c.JSON(http.StatusOK, models.SubscriptionResponse{Success: true})
}
