package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductStatus string

const (
	StatusAvailable ProductStatus = "available"
	StatusSold      ProductStatus = "sold"
	StatusHidden    ProductStatus = "hidden"
)

func (s ProductStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusSold, StatusHidden:
		return true
	}
	return false
}

// ═══════════════════════════════════════════════════════════
// Product (GORM)
// ═══════════════════════════════════════════════════════════

type Product struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string         `json:"title" gorm:"not null;index"`
	Description string         `json:"description"`
	Price       float64        `json:"price" gorm:"type:numeric(12,2);not null;check:price >= 0"`
	Status      ProductStatus  `json:"status" gorm:"type:varchar(20);not null;default:'available';check:status IN ('available', 'sold', 'hidden');index"`
	Featured    bool           `json:"featured" gorm:"default:false"`
	CategoryID  *uuid.UUID     `json:"category_id" gorm:"type:uuid;index"`
	Category    *Category      `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:SET NULL"`
	Views       int            `json:"views" gorm:"default:0"`
	Images      []ProductImage `json:"product_images,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time      `json:"created_at" gorm:"autoCreateTime;index:,sort:desc"`
	UpdatedAt   time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

type ProductImage struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	ImageURL  string    `json:"image_url" gorm:"not null"`
	ThumbURL  string    `json:"thumb_url"`
	PublicID  string    `json:"-" gorm:"not null"`
	IsPrimary bool      `json:"is_primary" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.Must(uuid.NewV7())
	}
	if p.Status == "" {
		p.Status = StatusAvailable
	}
	return nil
}

func (i *ProductImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (Product) TableName() string      { return "products" }
func (ProductImage) TableName() string { return "product_images" }

// PrimaryImage returns the flagged primary image, else the first one.
func (p Product) PrimaryImage() *ProductImage {
	for i := range p.Images {
		if p.Images[i].IsPrimary {
			return &p.Images[i]
		}
	}
	if len(p.Images) > 0 {
		return &p.Images[0]
	}
	return nil
}

// ═══════════════════════════════════════════════════════════
// Request/Response Models
// ═══════════════════════════════════════════════════════════

// CreateProductForm is bound from multipart/form-data; images come as files.
type CreateProductForm struct {
	Title       string  `form:"title" binding:"required,min=2,max=140" example:"Bicicleta aro 29"`
	Description string  `form:"description" binding:"max=4000"`
	Price       float64 `form:"price" binding:"required,gte=0" example:"300"`
	CategoryID  string  `form:"category_id" binding:"omitempty,uuid"`
	Featured    bool    `form:"featured"`
}

type UpdateProductStatusRequest struct {
	Status ProductStatus `json:"status" binding:"required,oneof=available sold hidden" example:"sold"`
}

// ProductCard is the storefront card, ready for the grid template.
type ProductCard struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Price        string `json:"price"`
	CategorySlug string `json:"category_slug"`
	CategoryName string `json:"category_name"`
	ImageURL     string `json:"image_url"`
	ListedAt     string `json:"listed_at"` // dd/mm/yyyy
	Sold         bool   `json:"sold"`
}
