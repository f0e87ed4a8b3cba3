package search

import (
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// Controller wires Reduce to a Page. It owns the search state for one
// page load, renders every outcome and runs debounced passes on a timer.
type Controller struct {
	mu         sync.Mutex
	page       *Page
	state      State
	debouncer  *Debouncer
	navigateTo string
	passes     int
	// pending is the generation of the debounced pass the state expects.
	pending    uint64
}

// NewController binds doc, stamps card categories and, when pageURL
// carries ?q=, seeds the search box and filters immediately.
func NewController(doc *goquery.Document, pageURL string, opts Options) *Controller {
	opts = opts.withDefaults()
	c := &Controller{
		page:      NewPage(doc, opts),
		state:     NewState(),
		debouncer: NewDebouncer(opts.Debounce),
	}
	c.page.DeriveCategories()

	if q := QueryFromURL(pageURL); q != "" && c.page.HasSearchInput() {
		c.page.SetSearchValue(q)
		c.state.SearchTerm = q
		c.Dispatch(DebounceElapsed{})
	}
	return c
}

// Dispatch feeds one event through Reduce and renders the outcome.
func (c *Controller) Dispatch(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dispatchLocked(ev)
}

func (c *Controller) dispatchLocked(ev Event) {
	next, out := Reduce(c.state, ev, c.page.View())
	c.state = next

	if out.Filter != nil {
		c.page.Apply(*out.Filter)
		c.passes++
	}
	if out.ScheduleFilter {
		c.pending++
		gen := c.pending
		c.debouncer.Trigger(func() { c.debounced(gen) })
	}
	if out.NavigateTo != "" {
		c.navigateTo = out.NavigateTo
	}
	c.page.ApplyDropdown(c.state)
}

// debounced runs the pass scheduled as gen. A timer that fired before a
// newer keystroke or a submit took c.mu finds a newer generation and drops.
func (c *Controller) debounced(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.pending {
		return
	}
	c.dispatchLocked(DebounceElapsed{})
}

// cancelPending drops the scheduled pass, including one whose timer has
// already fired and is waiting on c.mu. Callers hold c.mu.
func (c *Controller) cancelPending() {
	c.pending++
	c.debouncer.Stop()
}

// Input handles a keystroke. Without a search box it does nothing.
func (c *Controller) Input(value string) {
	c.mu.Lock()
	if !c.page.HasSearchInput() {
		c.mu.Unlock()
		return
	}
	c.page.SetSearchValue(value)
	c.mu.Unlock()
	c.Dispatch(InputChanged{Value: value})
}

// Submit handles Enter or the search button: an immediate pass, bypassing
// the debounce. Any pending debounced pass is dropped.
func (c *Controller) Submit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelPending()
	c.dispatchLocked(Submitted{})
}

func (c *Controller) SelectCategory(slug, name string) {
	c.Dispatch(CategorySelected{Slug: slug, Name: name})
}

func (c *Controller) ToggleDropdown() {
	c.mu.Lock()
	ok := c.page.HasDropdown()
	c.mu.Unlock()
	if ok {
		c.Dispatch(DropdownToggled{})
	}
}

func (c *Controller) ClickOutside() { c.Dispatch(OutsideClicked{}) }

// ClearFilter resets the piece of state behind a chip and re-filters.
func (c *Controller) ClearFilter(kind ChipKind) {
	if kind == ChipSearch {
		c.mu.Lock()
		c.page.SetSearchValue("")
		c.cancelPending()
		c.mu.Unlock()
	}
	c.Dispatch(FilterCleared{Kind: kind})
}

// ClearSearch is the no-results panel's "Limpar busca" action.
func (c *Controller) ClearSearch() { c.ClearFilter(ChipSearch) }

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Cards returns the cards as currently rendered.
func (c *Controller) Cards() []Card {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page.Cards()
}

// Passes counts the filter passes rendered so far.
func (c *Controller) Passes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.passes
}

// NavigateTo is the last navigation requested by a submit, if any.
func (c *Controller) NavigateTo() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.navigateTo
}

// HTML serializes the document as rendered.
func (c *Controller) HTML() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page.doc.Html()
}

// Close cancels any pending debounced pass.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelPending()
}
