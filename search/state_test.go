package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleView() View {
	return View{
		Cards: sampleCards(),
		Categories: []CategoryOption{
			{Slug: "moveis", Name: "Móveis"},
			{Slug: "esportes", Name: "Esportes"},
		},
		HasGrid: true,
	}
}

func TestReduce_InputSchedulesDebouncedPass(t *testing.T) {
	s, out := Reduce(NewState(), InputChanged{Value: "cad"}, sampleView())

	assert.Equal(t, "cad", s.SearchTerm)
	assert.True(t, out.ScheduleFilter)
	assert.Nil(t, out.Filter)
}

func TestReduce_DebounceElapsedFilters(t *testing.T) {
	s := NewState()
	s.SearchTerm = "cadeira"

	_, out := Reduce(s, DebounceElapsed{}, sampleView())

	require.NotNil(t, out.Filter)
	assert.Equal(t, []bool{true, false}, out.Filter.Visible)
}

func TestReduce_SubmitFiltersImmediately(t *testing.T) {
	s := NewState()
	s.SearchTerm = "bicicleta"

	_, out := Reduce(s, Submitted{}, sampleView())

	require.NotNil(t, out.Filter)
	assert.Empty(t, out.NavigateTo)
	assert.Equal(t, 1, out.Filter.VisibleCount)
}

func TestReduce_SubmitWithoutGridNavigates(t *testing.T) {
	s := NewState()
	s.SearchTerm = "mesa de jantar"
	s.SelectedCategory, s.SelectedCategoryName = "moveis", "Móveis"

	_, out := Reduce(s, Submitted{}, View{})

	assert.Nil(t, out.Filter)
	assert.Equal(t, "/categoria/moveis?q=mesa+de+jantar", out.NavigateTo)
}

func TestReduce_SelectCategory(t *testing.T) {
	s := NewState()
	s.DropdownOpen = true

	s, out := Reduce(s, CategorySelected{Slug: "esportes", Name: "Esportes"}, sampleView())

	assert.Equal(t, "esportes", s.SelectedCategory)
	assert.Equal(t, "Esportes", s.SelectedCategoryName)
	assert.False(t, s.DropdownOpen)
	require.NotNil(t, out.Filter)
	assert.Equal(t, []bool{false, true}, out.Filter.Visible)
}

func TestReduce_SelectUnknownCategoryIgnored(t *testing.T) {
	before := NewState()

	after, out := Reduce(before, CategorySelected{Slug: "carros", Name: "Carros"}, sampleView())

	assert.Equal(t, before, after)
	assert.Nil(t, out.Filter)
}

func TestReduce_SelectAllResets(t *testing.T) {
	s := NewState()
	s.SelectedCategory, s.SelectedCategoryName = "moveis", "Móveis"

	s, out := Reduce(s, CategorySelected{Slug: AllCategories, Name: "Todos"}, sampleView())

	assert.Equal(t, NewState(), s)
	require.NotNil(t, out.Filter)
	assert.Equal(t, 2, out.Filter.VisibleCount)
}

func TestReduce_DropdownToggleAndOutsideClick(t *testing.T) {
	s, out := Reduce(NewState(), DropdownToggled{}, sampleView())
	assert.True(t, s.DropdownOpen)
	assert.Equal(t, Outcome{}, out)

	s, out = Reduce(s, OutsideClicked{}, sampleView())
	assert.False(t, s.DropdownOpen)
	assert.Equal(t, Outcome{}, out)
}

func TestReduce_ClearChips(t *testing.T) {
	s := NewState()
	s.SearchTerm = "cadeira"
	s.SelectedCategory, s.SelectedCategoryName = "esportes", "Esportes"

	s, out := Reduce(s, FilterCleared{Kind: ChipCategory}, sampleView())
	assert.Equal(t, AllCategories, s.SelectedCategory)
	require.NotNil(t, out.Filter)
	assert.Equal(t, []bool{true, false}, out.Filter.Visible)

	s, out = Reduce(s, FilterCleared{Kind: ChipSearch}, sampleView())
	assert.Empty(t, s.SearchTerm)
	require.NotNil(t, out.Filter)
	assert.Equal(t, 2, out.Filter.VisibleCount)
}
