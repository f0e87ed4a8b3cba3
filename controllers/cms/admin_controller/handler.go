package admin_controller

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/desapego-dos-martins/desapego-backend/services"
)

// SubscriberCounter reports how many browsers are subscribed to push.
type SubscriberCounter interface {
	Count(ctx context.Context) (int64, error)
}

// Handler serves the admin panel's overview endpoints.
type Handler struct {
	catalog     services.Catalog
	subscribers SubscriberCounter
	activity    services.ActivityLog
	log         zerolog.Logger
}

func NewHandler(catalog services.Catalog, subscribers SubscriberCounter, activity services.ActivityLog, log zerolog.Logger) *Handler {
	return &Handler{catalog: catalog, subscribers: subscribers, activity: activity, log: log}
}
