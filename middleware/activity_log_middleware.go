package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/desapego-dos-martins/desapego-backend/models"
	"github.com/desapego-dos-martins/desapego-backend/services"
)

const activityKey = "activity"

// Activity is what a handler reports about the action it performed.
type Activity struct {
	Action       string
	ResourceType string
	ResourceID   string
	ResourceName string
	Before       any
	After        any
}

// SetActivity hands the action description to ActivityLogging.
func SetActivity(c *gin.Context, a Activity) {
	c.Set(activityKey, a)
}

// ActivityLogging records admin mutations after the handler ran. Must be
// used after AdminAuth. Handlers that never call SetActivity are not logged.
func ActivityLogging(logs services.ActivityLog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method == http.MethodGet {
			return
		}
		v, ok := c.Get(activityKey)
		if !ok {
			return
		}
		activity, ok := v.(Activity)
		if !ok {
			return
		}
		admin, _ := AdminFromContext(c)

		entry := models.ActivityLog{
			AdminID:      admin.ID,
			AdminEmail:   admin.Email,
			Action:       activity.Action,
			ResourceType: activity.ResourceType,
			ResourceID:   activity.ResourceID,
			ResourceName: activity.ResourceName,
			IPAddress:    c.ClientIP(),
			UserAgent:    c.Request.UserAgent(),
			Status:       models.LogSuccess,
		}
		if status := c.Writer.Status(); status >= 200 && status < 300 {
			entry.Changes = models.NewChanges(activity.Before, activity.After)
		} else {
			entry.Status = models.LogFailed
			entry.ErrorMessage = "Request failed with status " + http.StatusText(status)
		}

		// The request context may already be cancelled by the time we get here.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), 5*time.Second)
		defer cancel()
		_ = logs.Record(ctx, entry)
	}
}
