package analytics_controller

import (
	"github.com/rs/zerolog"

	"github.com/desapego-dos-martins/desapego-backend/services"
)

const (
	DefaultTopProducts = 6
	MaxTopProducts     = 20
)

type Handler struct {
	catalog services.Catalog
	log     zerolog.Logger
}

func NewHandler(catalog services.Catalog, log zerolog.Logger) *Handler {
	return &Handler{catalog: catalog, log: log}
}
