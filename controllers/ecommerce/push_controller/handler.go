package push_controller

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/desapego-dos-martins/desapego-backend/push"
)

// Handler serves the endpoints browsers call while subscribing.
type Handler struct {
	store          push.Store
	vapidPublicKey string
	now            func() time.Time
	log            zerolog.Logger
}

func NewHandler(store push.Store, vapidPublicKey string, log zerolog.Logger) *Handler {
	return &Handler{store: store, vapidPublicKey: vapidPublicKey, now: time.Now, log: log}
}
