package models

// FilterMetadata feeds the storefront filter panel in one request.
type FilterMetadata struct {
	Availability AvailabilityData    `json:"availability"`
	Categories   []CategoryWithCount `json:"categories"`
	PriceRange   PriceRangeData      `json:"price_range"`
}

// AvailabilityData counts listed products; hidden ones are never included.
type AvailabilityData struct {
	Available int `json:"available"`
	Sold      int `json:"sold"`
}

type PriceRangeData struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}
