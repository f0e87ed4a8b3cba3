package search

import (
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Page binds a parsed HTML document to the selectors in Options. Every
// lookup tolerates missing elements: an absent search box, dropdown,
// chip row or grid makes the matching feature inert.
type Page struct {
	doc  *goquery.Document
	opts Options
}

// NewPage wraps doc. Zero Options fields take their defaults.
func NewPage(doc *goquery.Document, opts Options) *Page {
	return &Page{doc: doc, opts: opts.withDefaults()}
}

func (p *Page) cardNodes() *goquery.Selection {
	return p.doc.Find(p.opts.ProductSelector)
}

// DeriveCategories stamps data-category on every card from the text of
// its category badge. A card without a badge gets an empty category.
func (p *Page) DeriveCategories() {
	p.cardNodes().Each(func(_ int, card *goquery.Selection) {
		slug := ""
		if badge := card.Find(p.opts.CategorySelector).First(); badge.Length() > 0 {
			slug = Slugify(badge.Text())
		}
		card.SetAttr("data-category", slug)
	})
}

// Cards reads the current card projections in document order.
func (p *Page) Cards() []Card {
	nodes := p.cardNodes()
	cards := make([]Card, 0, nodes.Length())
	nodes.Each(func(_ int, card *goquery.Selection) {
		id, _ := card.Attr("data-id")
		slug, _ := card.Attr("data-category")
		cards = append(cards, Card{
			ID:           id,
			Title:        card.Find(p.opts.TitleSelector).First().Text(),
			CategorySlug: slug,
			CategoryName: card.Find(p.opts.CategorySelector).First().Text(),
			Price:        card.Find(p.opts.PriceSelector).First().Text(),
			Visible:      !card.HasClass(hiddenClass),
		})
	})
	return cards
}

// Categories lists the dropdown items that carry both a slug and a name.
func (p *Page) Categories() []CategoryOption {
	var opts []CategoryOption
	p.doc.Find(categoryItemSel).Each(func(_ int, item *goquery.Selection) {
		slug, _ := item.Attr("data-category")
		name, _ := item.Attr("data-name")
		if slug != "" && name != "" {
			opts = append(opts, CategoryOption{Slug: slug, Name: name})
		}
	})
	return opts
}

// View snapshots what Reduce needs.
func (p *Page) View() View {
	return View{
		Cards:      p.Cards(),
		Categories: p.Categories(),
		HasGrid:    p.HasGrid(),
	}
}

func (p *Page) HasGrid() bool        { return p.doc.Find(p.opts.ProductGridSelector).Length() > 0 }
func (p *Page) HasSearchInput() bool { return p.doc.Find(searchInputID).Length() > 0 }
func (p *Page) HasDropdown() bool {
	return p.doc.Find(dropdownButtonID).Length() > 0 && p.doc.Find(dropdownID).Length() > 0
}

// SearchValue returns the value attribute of the search box.
func (p *Page) SearchValue() string {
	v, _ := p.doc.Find(searchInputID).Attr("value")
	return v
}

// SetSearchValue writes the value attribute of the search box.
func (p *Page) SetSearchValue(v string) {
	p.doc.Find(searchInputID).SetAttr("value", v)
}

// Apply renders a filter pass: card visibility, results counter,
// no-results panel and the active-filter chips.
func (p *Page) Apply(r FilterResult) {
	p.cardNodes().Each(func(i int, card *goquery.Selection) {
		if i < len(r.Visible) && r.Visible[i] {
			card.RemoveClass(hiddenClass).AddClass(fadeInClass)
		} else {
			card.AddClass(hiddenClass).RemoveClass(fadeInClass)
		}
	})
	p.renderResultsCount(r)
	p.renderNoResults(r)
	p.renderChips(r.Chips)
}

// ApplyDropdown syncs the dropdown panel and button label with s.
func (p *Page) ApplyDropdown(s State) {
	if !p.HasDropdown() {
		return
	}
	panel := p.doc.Find(dropdownID)
	if s.DropdownOpen {
		panel.RemoveClass(hiddenClass)
	} else {
		panel.AddClass(hiddenClass)
	}

	label := "Categorias"
	if s.SelectedCategory != AllCategories {
		label = s.SelectedCategoryName
	}
	p.doc.Find(dropdownButtonID).Find("span").First().SetText(label)
}

func (p *Page) renderResultsCount(r FilterResult) {
	el := p.doc.Find(resultsCountID)
	if el.Length() > 0 {
		el.SetText(r.ResultsLabel)
		toggleHidden(el, r.VisibleCount == 0)
		return
	}
	if r.VisibleCount > 0 {
		p.doc.Find(p.opts.ProductGridSelector).First().BeforeHtml(fmt.Sprintf(
			`<div id="resultsCount" class="text-sm text-neutral-500 mb-4">%s</div>`,
			html.EscapeString(r.ResultsLabel)))
	}
}

func (p *Page) renderNoResults(r FilterResult) {
	el := p.doc.Find(noResultsID)
	if el.Length() > 0 {
		if !r.NoResults {
			el.AddClass(hiddenClass)
			return
		}
		el.RemoveClass(hiddenClass)
		if msg := el.Find("p").First(); msg.Length() > 0 {
			msg.SetText(r.NoResultsMessage)
		} else {
			el.SetText(r.NoResultsMessage)
		}
		return
	}
	if r.NoResults {
		p.doc.Find(p.opts.ProductGridSelector).First().AfterHtml(fmt.Sprintf(
			`<div id="noResults" class="w-full py-16 text-center text-neutral-500">`+
				`<div class="flex flex-col items-center">`+
				`<p class="text-lg">%s</p>`+
				`<button id="clearSearch" class="mt-4 text-primary-600 font-medium">Limpar busca</button>`+
				`</div></div>`,
			html.EscapeString(r.NoResultsMessage)))
	}
}

func (p *Page) renderChips(chips []Chip) {
	row := p.doc.Find(activeFiltersID)
	if row.Length() == 0 {
		return
	}
	row.Empty()

	var b strings.Builder
	for _, c := range chips {
		color := "primary"
		if c.Kind == ChipSearch {
			color = "accent"
		}
		fmt.Fprintf(&b,
			`<div class="inline-flex items-center gap-2 bg-%[1]s-100 text-%[1]s-700 px-3 py-1.5 rounded-full text-sm font-medium">`+
				`<span>%[2]s</span><button class="ml-1" data-clear="%[3]s">×</button></div>`,
			color, html.EscapeString(c.Label), c.Kind)
	}
	row.AppendHtml(b.String())
	toggleHidden(row, len(chips) == 0)
}

func toggleHidden(s *goquery.Selection, hidden bool) {
	if hidden {
		s.AddClass(hiddenClass)
	} else {
		s.RemoveClass(hiddenClass)
	}
}
