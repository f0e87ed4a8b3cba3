package carousel_controller

import (
	"github.com/rs/zerolog"

	"github.com/desapego-dos-martins/desapego-backend/services"
)

// Handler serves the public homepage carousel.
type Handler struct {
	carousel services.Carousel
	log      zerolog.Logger
}

func NewHandler(carousel services.Carousel, log zerolog.Logger) *Handler {
	return &Handler{carousel: carousel, log: log}
}
