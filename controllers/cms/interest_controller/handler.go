package interest_controller

import (
	"github.com/rs/zerolog"

	"github.com/desapego-dos-martins/desapego-backend/services"
)

type Handler struct {
	catalog services.Catalog
	log     zerolog.Logger
}

func NewHandler(catalog services.Catalog, log zerolog.Logger) *Handler {
	return &Handler{catalog: catalog, log: log}
}
