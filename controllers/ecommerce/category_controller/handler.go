package category_controller

import (
	"github.com/rs/zerolog"

	"github.com/desapego-dos-martins/desapego-backend/search"
	"github.com/desapego-dos-martins/desapego-backend/services"
)

// AllProductsSlug is the /categoria path segment listing every category.
const AllProductsSlug = "todos"

// Handler serves the public category endpoints and pages.
type Handler struct {
	catalog  services.Catalog
	siteName string
	search   search.Options
	log      zerolog.Logger
}

func NewHandler(catalog services.Catalog, siteName string, log zerolog.Logger) *Handler {
	return &Handler{catalog: catalog, siteName: siteName, search: search.DefaultOptions(), log: log}
}
