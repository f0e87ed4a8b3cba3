package models

import "time"

// TopProduct ranks a product by attention on the storefront.
type TopProduct struct {
	ProductID     string        `json:"product_id"`
	Title         string        `json:"title"`
	Status        ProductStatus `json:"status"`
	Views         int           `json:"views"`
	InterestCount int           `json:"interest_count"`
	// Interest requests per 100 views; 0 when the product was never viewed.
	InterestRate float64 `json:"interest_rate"`
}

// InterestListRow is one interest request as the admin table shows it.
type InterestListRow struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	ProductTitle string    `json:"product_title"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Message      string    `json:"message"`
	CreatedAt    time.Time `json:"created_at"`
}
