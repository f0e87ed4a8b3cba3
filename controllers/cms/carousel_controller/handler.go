package carousel_controller

import (
	"github.com/rs/zerolog"

	"github.com/desapego-dos-martins/desapego-backend/services"
)

// MaxSlides bounds the images accepted per upload.
const MaxSlides = 10

// Handler serves the admin carousel endpoints.
type Handler struct {
	carousel services.Carousel
	images   services.ImageStore
	log      zerolog.Logger
}

func NewHandler(carousel services.Carousel, images services.ImageStore, log zerolog.Logger) *Handler {
	return &Handler{carousel: carousel, images: images, log: log}
}
