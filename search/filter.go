package search

import (
	"fmt"
	"strings"
)

// ChipKind identifies an active-filter chip.
type ChipKind string

const (
	ChipCategory ChipKind = "category"
	ChipSearch   ChipKind = "search"
)

// Chip is one entry of the active-filter row.
type Chip struct {
	Kind  ChipKind
	Label string
}

// FilterResult is the outcome of one filter pass over the cards.
type FilterResult struct {
	// Visible has one entry per input card, in order.
	Visible          []bool
	VisibleCount     int
	NoResults        bool
	ResultsLabel     string
	NoResultsMessage string
	Chips            []Chip
}

type matcher struct {
	raw      string
	query    string
	category string
}

func newMatcher(s State) matcher {
	raw := strings.TrimSpace(s.SearchTerm)
	return matcher{
		raw:      raw,
		query:    Normalize(raw),
		category: s.SelectedCategory,
	}
}

func (m matcher) matchesSearch(c Card) bool {
	if m.raw == "" {
		return true
	}
	return strings.Contains(Normalize(c.Title), m.query) ||
		strings.Contains(Normalize(c.CategoryName), m.query) ||
		strings.Contains(c.Price, m.raw)
}

func (m matcher) matchesCategory(c Card) bool {
	return m.category == AllCategories || c.CategorySlug == m.category
}

// Matches reports whether a card passes both the text and category filters.
func Matches(s State, c Card) bool {
	m := newMatcher(s)
	return m.matchesSearch(c) && m.matchesCategory(c)
}

// Filter runs one pass over cards. It is a pure function of its inputs.
func Filter(s State, cards []Card) FilterResult {
	m := newMatcher(s)
	r := FilterResult{Visible: make([]bool, len(cards))}

	for i, c := range cards {
		if m.matchesSearch(c) && m.matchesCategory(c) {
			r.Visible[i] = true
			r.VisibleCount++
		}
	}

	r.NoResults = r.VisibleCount == 0
	r.ResultsLabel = ResultsLabel(r.VisibleCount)
	r.NoResultsMessage = `Nenhum resultado encontrado para "` + m.raw + `"`
	r.Chips = Chips(s)
	return r
}

// Apply returns a copy of cards with Visible set from r.
func (r FilterResult) Apply(cards []Card) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	for i := range out {
		out[i].Visible = i < len(r.Visible) && r.Visible[i]
	}
	return out
}

// ResultsLabel renders the results counter text.
func ResultsLabel(n int) string {
	if n == 1 {
		return "1 produto encontrado"
	}
	return fmt.Sprintf("%d produtos encontrados", n)
}

// Chips lists the active filters of s.
func Chips(s State) []Chip {
	var chips []Chip
	if s.SelectedCategory != AllCategories {
		chips = append(chips, Chip{Kind: ChipCategory, Label: s.SelectedCategoryName})
	}
	if term := strings.TrimSpace(s.SearchTerm); term != "" {
		chips = append(chips, Chip{Kind: ChipSearch, Label: term})
	}
	return chips
}
