package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/desapego-dos-martins/desapego-backend/models"
)

// Carousel keeps the homepage carousel slides.
type Carousel interface {
	ListCarouselImages(ctx context.Context) ([]models.CarouselImage, error)
	AddCarouselImages(ctx context.Context, images []UploadedImage) ([]models.CarouselImage, error)
	RemoveCarouselImage(ctx context.Context, imageURL string) (models.CarouselImage, error)
}

type CarouselService struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewCarouselService(db *gorm.DB, log zerolog.Logger) *CarouselService {
	return &CarouselService{db: db, log: log}
}

func (s *CarouselService) ListCarouselImages(ctx context.Context) ([]models.CarouselImage, error) {
	var out []models.CarouselImage
	if err := s.db.WithContext(ctx).Order("position ASC, created_at ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list carousel images: %w", err)
	}
	return out, nil
}

// AddCarouselImages appends images after the last slide, in the given order.
func (s *CarouselService) AddCarouselImages(ctx context.Context, images []UploadedImage) ([]models.CarouselImage, error) {
	if len(images) == 0 {
		return []models.CarouselImage{}, nil
	}
	var out []models.CarouselImage
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int
		if err := tx.Model(&models.CarouselImage{}).Select("COALESCE(MAX(position), -1)").Scan(&last).Error; err != nil {
			return err
		}
		out = make([]models.CarouselImage, 0, len(images))
		for i, img := range images {
			out = append(out, models.CarouselImage{
				ImageURL: img.URL,
				PublicID: img.PublicID,
				Position: last + 1 + i,
			})
		}
		return tx.Create(&out).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: carousel image", ErrConflict)
		}
		return nil, fmt.Errorf("add carousel images: %w", err)
	}
	s.log.Info().Int("count", len(out)).Msg("carousel images added")
	return out, nil
}

// RemoveCarouselImage deletes the slide showing imageURL. The stored asset
// is left to the caller.
func (s *CarouselService) RemoveCarouselImage(ctx context.Context, imageURL string) (models.CarouselImage, error) {
	var img models.CarouselImage
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&img, "image_url = ?", imageURL).Error; err != nil {
			return err
		}
		return tx.Delete(&img).Error
	})
	if err != nil {
		return models.CarouselImage{}, notFound(err)
	}
	return img, nil
}
