package templates

import (
	"embed"
	"html/template"
	"io"

	"github.com/desapego-dos-martins/desapego-backend/models"
)

//go:embed *.html
var files embed.FS

var pages = template.Must(template.ParseFS(files, "*.html"))

// CategoryPage is the data behind /categoria/:slug.
type CategoryPage struct {
	SiteName   string
	Title      string
	Slug       string
	Categories []models.CategoryWithCount
	Products   []models.ProductCard
}

// RenderCategoryPage writes the product grid page. The markup carries the
// ids and classes the live search binds to.
func RenderCategoryPage(w io.Writer, page CategoryPage) error {
	return pages.ExecuteTemplate(w, "category_page.html", page)
}
