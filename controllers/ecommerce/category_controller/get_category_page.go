package category_controller

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"

	"github.com/desapego-dos-martins/desapego-backend/config"
	"github.com/desapego-dos-martins/desapego-backend/search"
	"github.com/desapego-dos-martins/desapego-backend/services"
	"github.com/desapego-dos-martins/desapego-backend/templates"
)

// GetCategoryPage godoc
// @Summary Category page
// @Description Server-rendered product grid for one category ("todos" for all). A q query parameter is applied by the live search before the page is sent, so cards that do not match arrive hidden.
// @Tags Storefront - Categories
// @Produce html
// @Param slug path string true "Category slug or todos"
// @Param q query string false "Search term"
// @Success 200 {string} string "HTML page"
// @Failure 404 {string} string "Unknown category"
// @Failure 500 {string} string "Rendering failed"
// @Router /categoria/{slug} [get]
func (h *Handler) GetCategoryPage(c *gin.Context) {
	ctx, cancel := config.WithTimeout(c.Request.Context())
	defer cancel()

	slug := c.Param("slug")
	page := templates.CategoryPage{SiteName: h.siteName, Title: "Todos os produtos", Slug: slug}
	query := services.ProductQuery{}

	if slug != AllProductsSlug && slug != search.AllCategories {
		category, err := h.catalog.GetCategoryBySlug(ctx, slug)
		if errors.Is(err, services.ErrNotFound) {
			c.String(http.StatusNotFound, "Categoria não encontrada")
			return
		}
		if err != nil {
			h.fail(c, err, "failed to load category")
			return
		}
		page.Title = category.Name
		query.Category = category.Slug
	}

	products, err := h.catalog.ListProducts(ctx, query)
	if err != nil {
		h.fail(c, err, "failed to list products")
		return
	}
	page.Products = services.ProductCards(products)

	if page.Categories, err = h.catalog.ListCategories(ctx); err != nil {
		h.fail(c, err, "failed to list categories")
		return
	}

	var buf bytes.Buffer
	if err := templates.RenderCategoryPage(&buf, page); err != nil {
		h.fail(c, err, "failed to render category page")
		return
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		h.fail(c, err, "failed to parse category page")
		return
	}

	ctrl := search.NewController(doc, c.Request.URL.String(), h.search)
	defer ctrl.Close()

	html, err := ctrl.HTML()
	if err != nil {
		h.fail(c, err, "failed to serialize category page")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (h *Handler) fail(c *gin.Context, err error, msg string) {
	h.log.Error().Err(err).Str("slug", c.Param("slug")).Msg(msg)
	c.String(http.StatusInternalServerError, "Erro ao carregar a página")
}
