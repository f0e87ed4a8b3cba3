package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InterestedUser is a visitor who asked about a product.
type InterestedUser struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone" gorm:"not null"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (u *InterestedUser) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (InterestedUser) TableName() string {
	return "interested_users"
}

type RegisterInterestRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=120" example:"Maria"`
	Email   string `json:"email" binding:"omitempty,email" example:"maria@example.com"`
	Phone   string `json:"phone" binding:"required,min=8,max=20" example:"(11) 98765-4321"`
	Message string `json:"message" binding:"max=1000"`
}

type InterestResponse struct {
	WhatsappURL string `json:"whatsapp_url" example:"https://wa.me/5511987654321?text=Ol%C3%A1"`
}
