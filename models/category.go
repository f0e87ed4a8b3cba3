package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups products on the storefront. Slug is what the category
// dropdown, the card badge and /categoria/:slug all key on.
type Category struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Slug      string    `json:"slug" gorm:"not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// CategoryWithCount is what the public category list returns.
type CategoryWithCount struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	ProductCount int       `json:"product_count"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=2,max=80" example:"Eletrônicos & Games"`
	// Optional; must equal the slug derived from Name.
	Slug string `json:"slug" binding:"omitempty,max=80" example:"eletronicos--games"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (Category) TableName() string {
	return "categories"
}
