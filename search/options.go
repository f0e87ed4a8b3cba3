package search

import "time"

// Element IDs and selectors the controller binds to besides the
// configurable ones in Options. A page missing any of them simply loses
// the corresponding feature.
const (
	searchInputID    = "#searchInput"
	searchButtonID   = "#searchButton"
	dropdownButtonID = "#categoryDropdownButton"
	dropdownID       = "#categoryDropdown"
	categoryItemSel  = ".category-dropdown-item"
	activeFiltersID  = "#activeFilters"
	resultsCountID   = "#resultsCount"
	noResultsID      = "#noResults"

	hiddenClass = "hidden"
	fadeInClass = "animate-fade-in"
)

// DefaultDebounce is the quiet period before a live filter pass runs.
const DefaultDebounce = 300 * time.Millisecond

// Options configures which parts of a page hold the product cards.
type Options struct {
	// ProductSelector matches every product card. Default ".product-card".
	ProductSelector string
	// ProductGridSelector matches the card container. Default ".product-grid".
	ProductGridSelector string
	// TitleSelector matches the title inside a card. Default "h3".
	TitleSelector string
	// CategorySelector matches the category badge inside a card. Default ".badge".
	CategorySelector string
	// PriceSelector matches the price inside a card. Default ".text-accent-600".
	PriceSelector string
	// Debounce is the live-search quiet period. Default 300ms.
	Debounce time.Duration
}

// DefaultOptions returns the selectors used by the storefront templates.
func DefaultOptions() Options {
	return Options{
		ProductSelector:     ".product-card",
		ProductGridSelector: ".product-grid",
		TitleSelector:       "h3",
		CategorySelector:    ".badge",
		PriceSelector:       ".text-accent-600",
		Debounce:            DefaultDebounce,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.ProductSelector == "" {
		o.ProductSelector = d.ProductSelector
	}
	if o.ProductGridSelector == "" {
		o.ProductGridSelector = d.ProductGridSelector
	}
	if o.TitleSelector == "" {
		o.TitleSelector = d.TitleSelector
	}
	if o.CategorySelector == "" {
		o.CategorySelector = d.CategorySelector
	}
	if o.PriceSelector == "" {
		o.PriceSelector = d.PriceSelector
	}
	if o.Debounce <= 0 {
		o.Debounce = d.Debounce
	}
	return o
}
