package notification_controller

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/desapego-dos-martins/desapego-backend/push"
)

// Broadcaster fans a message out to every stored subscription.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg push.Message) (push.Result, error)
}

// BroadcastObserver times whole broadcasts.
type BroadcastObserver interface {
	ObserveBroadcast(d time.Duration)
}

type Handler struct {
	broadcaster Broadcaster
	observer    BroadcastObserver
	log         zerolog.Logger
}

// NewHandler builds the admin notification handler. observer may be nil.
func NewHandler(broadcaster Broadcaster, observer BroadcastObserver, log zerolog.Logger) *Handler {
	return &Handler{broadcaster: broadcaster, observer: observer, log: log}
}
