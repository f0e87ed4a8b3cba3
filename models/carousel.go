package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CarouselImage is one slide of the homepage carousel. Slides are shown in
// Position order.
type CarouselImage struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ImageURL  string    `json:"image_url" gorm:"not null;uniqueIndex"`
	PublicID  string    `json:"-" gorm:"not null"`
	Position  int       `json:"position" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (i *CarouselImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (CarouselImage) TableName() string { return "carousel_images" }

type RemoveCarouselImageRequest struct {
	ImageURL string `json:"imageUrl" binding:"required,url" example:"https://res.cloudinary.com/demo/image/upload/desapego/carousel/banner.webp"`
}
