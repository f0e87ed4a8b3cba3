package search

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageHTML = `<html><body>
<div class="search-container">
  <input id="searchInput" value="">
  <button id="searchButton">Buscar</button>
  <button id="categoryDropdownButton"><span>Categorias</span></button>
  <div id="categoryDropdown" class="hidden">
    <div class="category-dropdown-item" data-category="all" data-name="Todos">Todos</div>
    <div class="category-dropdown-item" data-category="moveis" data-name="Móveis">Móveis</div>
    <div class="category-dropdown-item" data-category="esportes" data-name="Esportes">Esportes</div>
  </div>
</div>
<div id="activeFilters" class="hidden"></div>
<div class="product-grid">
  <div class="product-card" data-id="1"><span class="badge">Móveis</span><h3>Cadeira</h3><p class="text-accent-600">R$ 50,00</p></div>
  <div class="product-card" data-id="2"><span class="badge">Esportes</span><h3>Bicicleta</h3><p class="text-accent-600">R$ 300,00</p></div>
  <div class="product-card" data-id="3"><h3>Luminária</h3><p class="text-accent-600">R$ 80,00</p></div>
</div>
</body></html>`

func newTestController(t *testing.T, pageURL string) (*Controller, *goquery.Document) {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	require.NoError(t, err)
	opts := DefaultOptions()
	opts.Debounce = 40 * time.Millisecond
	c := NewController(doc, pageURL, opts)
	t.Cleanup(c.Close)
	return c, doc
}

func visibleIDs(c *Controller) []string {
	var ids []string
	for _, card := range c.Cards() {
		if card.Visible {
			ids = append(ids, card.ID)
		}
	}
	return ids
}

func TestNewController_DerivesCategories(t *testing.T) {
	_, doc := newTestController(t, "/categoria/todos")

	var slugs []string
	doc.Find(".product-card").Each(func(_ int, s *goquery.Selection) {
		v, _ := s.Attr("data-category")
		slugs = append(slugs, v)
	})
	assert.Equal(t, []string{"moveis", "esportes", ""}, slugs)
}

func TestNewController_SeedsFromQueryParam(t *testing.T) {
	c, doc := newTestController(t, "/categoria/todos?q=cadeira")

	assert.Equal(t, "cadeira", c.State().SearchTerm)
	v, _ := doc.Find("#searchInput").Attr("value")
	assert.Equal(t, "cadeira", v)
	assert.Equal(t, 1, c.Passes())
	assert.Equal(t, []string{"1"}, visibleIDs(c))
	assert.Equal(t, "1 produto encontrado", doc.Find("#resultsCount").Text())
}

func TestController_DebouncedInputRunsOnePass(t *testing.T) {
	c, _ := newTestController(t, "/")

	for _, v := range []string{"b", "bi", "bic", "bicicleta"} {
		c.Input(v)
	}
	assert.Equal(t, 0, c.Passes())

	assert.Eventually(t, func() bool { return c.Passes() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(80 * time.Millisecond)

	assert.Equal(t, 1, c.Passes())
	assert.Equal(t, []string{"2"}, visibleIDs(c))
}

func TestController_SubmitIsImmediate(t *testing.T) {
	c, _ := newTestController(t, "/")

	c.Input("luminaria")
	c.Submit()

	assert.Equal(t, 1, c.Passes())
	assert.Equal(t, []string{"3"}, visibleIDs(c))

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 1, c.Passes(), "submit drops the pending debounced pass")
}

func TestController_StaleDebouncedPassIsDropped(t *testing.T) {
	c, _ := newTestController(t, "/")

	c.Input("bic")
	c.mu.Lock()
	first := c.pending
	c.mu.Unlock()

	// a timer that already fired for "bic" must not run after a newer keystroke
	c.Input("cadeira")
	c.debounced(first)
	assert.Equal(t, 0, c.Passes())

	c.mu.Lock()
	second := c.pending
	c.mu.Unlock()

	// nor after a submit took over
	c.Submit()
	assert.Equal(t, 1, c.Passes())
	c.debounced(second)
	assert.Equal(t, 1, c.Passes())
	assert.Equal(t, []string{"1"}, visibleIDs(c))
}

func TestController_SelectCategoryRendersChipAndLabel(t *testing.T) {
	c, doc := newTestController(t, "/")
	c.ToggleDropdown()
	assert.False(t, doc.Find("#categoryDropdown").HasClass("hidden"))

	c.SelectCategory("esportes", "Esportes")

	assert.Equal(t, []string{"2"}, visibleIDs(c))
	assert.True(t, doc.Find("#categoryDropdown").HasClass("hidden"))
	assert.Equal(t, "Esportes", doc.Find("#categoryDropdownButton span").Text())
	assert.False(t, doc.Find("#activeFilters").HasClass("hidden"))
	assert.Equal(t, 1, doc.Find(`#activeFilters [data-clear="category"]`).Length())

	c.ClearFilter(ChipCategory)
	assert.Equal(t, []string{"1", "2", "3"}, visibleIDs(c))
	assert.True(t, doc.Find("#activeFilters").HasClass("hidden"))
	assert.Equal(t, "Categorias", doc.Find("#categoryDropdownButton span").Text())
}

func TestController_OutsideClickClosesDropdown(t *testing.T) {
	c, doc := newTestController(t, "/")
	c.ToggleDropdown()
	c.ClickOutside()

	assert.True(t, doc.Find("#categoryDropdown").HasClass("hidden"))
	assert.Equal(t, 0, c.Passes())
}

func TestController_NoResultsThenClear(t *testing.T) {
	c, doc := newTestController(t, "/")

	c.Input("geladeira")
	c.Submit()

	assert.Empty(t, visibleIDs(c))
	panel := doc.Find("#noResults")
	require.Equal(t, 1, panel.Length())
	assert.False(t, panel.HasClass("hidden"))
	assert.Contains(t, panel.Text(), `Nenhum resultado encontrado para "geladeira"`)

	c.ClearSearch()

	assert.Equal(t, []string{"1", "2", "3"}, visibleIDs(c))
	assert.True(t, doc.Find("#noResults").HasClass("hidden"))
	v, _ := doc.Find("#searchInput").Attr("value")
	assert.Empty(t, v)
}

func TestController_ClearSearchKeepsCategory(t *testing.T) {
	c, _ := newTestController(t, "/")
	c.SelectCategory("moveis", "Móveis")
	c.Input("bicicleta")
	c.Submit()
	assert.Empty(t, visibleIDs(c))

	c.ClearSearch()

	assert.Equal(t, []string{"1"}, visibleIDs(c))
}

func TestController_MissingElementsAreInert(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<div class="product-card" data-id="1"><h3>Cadeira</h3></div>`))
	require.NoError(t, err)
	c := NewController(doc, "/?q=cadeira", Options{})
	defer c.Close()

	c.Input("mesa")
	c.ToggleDropdown()
	c.SelectCategory("moveis", "Móveis")

	assert.Equal(t, 0, c.Passes())
	assert.Equal(t, NewState(), c.State())
}

func TestController_SubmitWithoutGridNavigates(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<input id="searchInput"><div class="category-dropdown-item" data-category="moveis" data-name="Móveis"></div>`))
	require.NoError(t, err)
	c := NewController(doc, "/", Options{})
	defer c.Close()

	c.SelectCategory("moveis", "Móveis")
	c.Input("sofá")
	c.Submit()

	assert.Equal(t, "/categoria/moveis?q=sof%C3%A1", c.NavigateTo())
}
