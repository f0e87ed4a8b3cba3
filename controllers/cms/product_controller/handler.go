package product_controller

import (
	"github.com/rs/zerolog"

	"github.com/desapego-dos-martins/desapego-backend/services"
)

// MaxImages bounds the photos accepted per product.
const MaxImages = 10

// Handler serves the admin product endpoints.
type Handler struct {
	catalog services.Catalog
	images  services.ImageStore
	log     zerolog.Logger
}

func NewHandler(catalog services.Catalog, images services.ImageStore, log zerolog.Logger) *Handler {
	return &Handler{catalog: catalog, images: images, log: log}
}
