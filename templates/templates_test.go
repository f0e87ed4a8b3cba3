package templates

import (
	"bytes"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desapego-dos-martins/desapego-backend/models"
)

func TestRenderCategoryPage(t *testing.T) {
	var buf bytes.Buffer
	err := RenderCategoryPage(&buf, CategoryPage{
		SiteName: "Desapego dos Martins",
		Title:    "Móveis",
		Slug:     "moveis",
		Categories: []models.CategoryWithCount{
			{Name: "Móveis", Slug: "moveis", ProductCount: 2},
			{Name: "Eletrônicos & Games", Slug: "eletronicos--games", ProductCount: 0},
		},
		Products: []models.ProductCard{
			{ID: "p1", Title: "Cadeira <antiga>", Price: "R$ 50,00", CategoryName: "Móveis", CategorySlug: "moveis", ImageURL: "https://img/1.webp"},
			{ID: "p2", Title: "Luminária", Price: "R$ 80,00", Sold: true},
		},
	})
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)

	assert.Equal(t, 1, doc.Find("#searchInput").Length())
	assert.Equal(t, 1, doc.Find("#categoryDropdownButton span").Length())
	assert.True(t, doc.Find("#categoryDropdown").HasClass("hidden"))
	assert.Equal(t, 3, doc.Find(".category-dropdown-item").Length())

	item := doc.Find(".category-dropdown-item").Eq(2)
	slug, _ := item.Attr("data-category")
	name, _ := item.Attr("data-name")
	assert.Equal(t, "eletronicos--games", slug)
	assert.Equal(t, "Eletrônicos & Games", name)

	cards := doc.Find(".product-grid .product-card")
	require.Equal(t, 2, cards.Length())

	first := cards.Eq(0)
	id, _ := first.Attr("data-id")
	assert.Equal(t, "p1", id)
	assert.Equal(t, "Cadeira <antiga>", first.Find("h3").Text())
	assert.Equal(t, "Móveis", first.Find(".badge").Text())
	assert.Equal(t, "R$ 50,00", first.Find(".text-accent-600").Text())

	second := cards.Eq(1)
	assert.Equal(t, 0, second.Find(".badge").Length())
	assert.Equal(t, 0, second.Find("img").Length())
	assert.Equal(t, "Vendido", second.Find(".sold-label").Text())
}
