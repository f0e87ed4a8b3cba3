package search

import "strings"

const (
	// AllCategories is the sentinel slug for "no category filter".
	AllCategories = "all"
	// AllCategoriesName pairs with AllCategories.
	AllCategoriesName = "Todos"
)

// State is everything the controller remembers between events.
type State struct {
	SelectedCategory     string
	SelectedCategoryName string
	// SearchTerm is kept exactly as typed; only comparisons normalize it.
	SearchTerm   string
	DropdownOpen bool
}

// NewState returns the state of a freshly loaded page.
func NewState() State {
	return State{
		SelectedCategory:     AllCategories,
		SelectedCategoryName: AllCategoriesName,
	}
}

// Event is a user interaction fed to Reduce.
type Event interface{ event() }

type (
	// InputChanged is a keystroke in the search box.
	InputChanged struct{ Value string }
	// Submitted is Enter in the search box or a click on the search button.
	Submitted struct{}
	// CategorySelected is a click on a dropdown item.
	CategorySelected struct{ Slug, Name string }
	// DropdownToggled is a click on the dropdown button.
	DropdownToggled struct{}
	// OutsideClicked is a click anywhere outside the dropdown.
	OutsideClicked struct{}
	// FilterCleared is a click on a chip's clear affordance.
	FilterCleared struct{ Kind ChipKind }
	// DebounceElapsed fires once the input has been quiet for the debounce period.
	DebounceElapsed struct{}
)

func (InputChanged) event()     {}
func (Submitted) event()        {}
func (CategorySelected) event() {}
func (DropdownToggled) event()  {}
func (OutsideClicked) event()   {}
func (FilterCleared) event()    {}
func (DebounceElapsed) event()  {}

// View is the part of the page Reduce needs to see.
type View struct {
	Cards      []Card
	Categories []CategoryOption
	// HasGrid is false on pages without a product grid; a submit there
	// navigates to the category page instead of filtering in place.
	HasGrid bool
}

// Outcome tells the adapter which side effects an event calls for.
type Outcome struct {
	// Filter is set when a filter pass must be rendered now.
	Filter *FilterResult
	// ScheduleFilter asks for a debounced pass.
	ScheduleFilter bool
	// NavigateTo is a destination URL, empty when staying on the page.
	NavigateTo string
}

// Reduce is the controller's state transition. It never touches the page.
func Reduce(s State, ev Event, v View) (State, Outcome) {
	switch e := ev.(type) {
	case InputChanged:
		s.SearchTerm = e.Value
		return s, Outcome{ScheduleFilter: true}

	case DebounceElapsed:
		return s, pass(s, v)

	case Submitted:
		if v.HasGrid {
			return s, pass(s, v)
		}
		return s, Outcome{NavigateTo: DestinationURL(s)}

	case CategorySelected:
		if e.Slug == "" || e.Name == "" {
			return s, Outcome{}
		}
		if e.Slug == AllCategories {
			s.SelectedCategory, s.SelectedCategoryName = AllCategories, AllCategoriesName
		} else {
			opt, ok := findCategory(v.Categories, e.Slug)
			if !ok {
				return s, Outcome{}
			}
			s.SelectedCategory, s.SelectedCategoryName = opt.Slug, e.Name
		}
		s.DropdownOpen = false
		return s, pass(s, v)

	case DropdownToggled:
		s.DropdownOpen = !s.DropdownOpen
		return s, Outcome{}

	case OutsideClicked:
		s.DropdownOpen = false
		return s, Outcome{}

	case FilterCleared:
		switch e.Kind {
		case ChipCategory:
			s.SelectedCategory, s.SelectedCategoryName = AllCategories, AllCategoriesName
		case ChipSearch:
			s.SearchTerm = ""
		default:
			return s, Outcome{}
		}
		return s, pass(s, v)
	}
	return s, Outcome{}
}

func pass(s State, v View) Outcome {
	r := Filter(s, v.Cards)
	return Outcome{Filter: &r}
}

func findCategory(opts []CategoryOption, slug string) (CategoryOption, bool) {
	for _, o := range opts {
		if strings.EqualFold(o.Slug, slug) {
			return o, true
		}
	}
	return CategoryOption{}, false
}
