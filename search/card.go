package search

// Card is the read-only projection of one rendered product card.
// Visible is the only field a filter pass changes.
type Card struct {
	ID           string
	Title        string
	CategorySlug string
	CategoryName string
	Price        string
	Visible      bool
}

// CategoryOption is one entry of the category dropdown.
type CategoryOption struct {
	Slug string
	Name string
}
