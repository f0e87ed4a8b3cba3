package search

import (
	"net/url"
	"strings"
)

// DestinationURL is where an explicit search navigates when the current
// page has no product grid: /categoria/<slug|todos>[?q=term]. It returns
// "" when there is neither a term nor a category to search for.
func DestinationURL(s State) string {
	term := strings.TrimSpace(s.SearchTerm)
	if term == "" && s.SelectedCategory == AllCategories {
		return ""
	}

	dest := "/categoria/todos"
	if s.SelectedCategory != AllCategories && s.SelectedCategory != "" {
		dest = "/categoria/" + url.PathEscape(s.SelectedCategory)
	}
	if term != "" {
		dest += "?" + url.Values{"q": {term}}.Encode()
	}
	return dest
}

// QueryFromURL extracts the q parameter of a page URL.
func QueryFromURL(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	return u.Query().Get("q")
}
