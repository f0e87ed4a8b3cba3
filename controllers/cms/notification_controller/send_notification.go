package notification_controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/desapego-dos-martins/desapego-backend/middleware"
	"github.com/desapego-dos-martins/desapego-backend/models"
	"github.com/desapego-dos-martins/desapego-backend/push"
)

// SendNotification godoc
// @Summary Broadcast a push notification
// @Description Sends the message to every subscriber. Subscriptions whose push service answers 404 or 410 are deleted. Individual delivery failures are counted in the result, not reported as errors.
// @Tags Push
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body push.Message true "Notification"
// @Success 200 {object} models.NotificationResponse{result=push.Result}
// @Failure 400 {object} models.NotificationResponse
// @Failure 401 {object} models.NotificationResponse
// @Failure 404 {object} models.NotificationResponse "No subscriptions"
// @Failure 500 {object} models.NotificationResponse
// @Router /send-notification [post]
func (h *Handler) SendNotification(c *gin.Context) {
	var msg push.Message
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, models.NotificationResponse{Success: false, Error: "Invalid request body"})
		return
	}

	activity := middleware.Activity{
		Action:       models.ActionSendNotification,
		ResourceType: models.ResourceTypeNotification,
		ResourceName: msg.Title,
	}

	// Deliveries carry their own timeouts.
	start := time.Now()
	result, err := h.broadcaster.Broadcast(c.Request.Context(), msg)
	if h.observer != nil {
		h.observer.ObserveBroadcast(time.Since(start))
	}

	switch {
	case errors.Is(err, push.ErrInvalidMessage):
		c.JSON(http.StatusBadRequest, models.NotificationResponse{Success: false, Error: err.Error()})
		return
	case err != nil:
		h.log.Error().Err(err).Msg("broadcast failed")
		middleware.SetActivity(c, activity)
		c.JSON(http.StatusInternalServerError, models.NotificationResponse{Success: false, Error: "Failed to send notification"})
		return
	case !result.Success:
		c.JSON(http.StatusNotFound, models.NotificationResponse{Success: false, Message: result.Message})
		return
	}

	activity.After = result
	middleware.SetActivity(c, activity)
	c.JSON(http.StatusOK, models.NotificationResponse{Success: true, Result: result})
}
