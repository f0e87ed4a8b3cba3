package models

type DashboardStats struct {
	TotalProducts     int   `json:"total_products"`
	AvailableProducts int   `json:"available_products"`
	SoldProducts      int   `json:"sold_products"`
	HiddenProducts    int   `json:"hidden_products"`
	TotalViews        int64 `json:"total_views"`
	InterestedCount   int64 `json:"interested_count"`
	// Products without a category; their cards only show under "Todos".
	Uncategorized int   `json:"uncategorized"`
	Subscribers   int64 `json:"push_subscribers"`
}
