package push

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists subscriptions keyed by endpoint.
type Store interface {
	Upsert(ctx context.Context, sub Subscription) error
	List(ctx context.Context) ([]Subscription, error)
	DeleteByEndpoint(ctx context.Context, endpoint string) error
	Count(ctx context.Context) (int64, error)
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Upsert(ctx context.Context, sub Subscription) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth", "created_at"}),
		}).
		Create(&sub).Error
	if err != nil {
		return fmt.Errorf("upsert subscription: %w", err)
	}
	return nil
}

func (s *GormStore) List(ctx context.Context) ([]Subscription, error) {
	var subs []Subscription
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return subs, nil
}

func (s *GormStore) DeleteByEndpoint(ctx context.Context, endpoint string) error {
	err := s.db.WithContext(ctx).
		Where("endpoint = ?", endpoint).
		Delete(&Subscription{}).Error
	if err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	return nil
}

func (s *GormStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&Subscription{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count subscriptions: %w", err)
	}
	return n, nil
}

// SaveSubscription validates a browser subscription and upserts it.
func SaveSubscription(ctx context.Context, store Store, b BrowserSubscription, now time.Time) error {
	if err := b.Validate(); err != nil {
		return err
	}
	return store.Upsert(ctx, b.Record(now))
}
