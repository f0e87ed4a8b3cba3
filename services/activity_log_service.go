package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/desapego-dos-martins/desapego-backend/models"
)

const (
	DefaultActivityLimit = 50
	MaxActivityLimit     = 200
)

// ActivityLog stores and lists admin actions.
type ActivityLog interface {
	Record(ctx context.Context, entry models.ActivityLog) error
	Recent(ctx context.Context, limit int) ([]models.ActivityLog, error)
}

type ActivityLogService struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewActivityLogService(db *gorm.DB, log zerolog.Logger) *ActivityLogService {
	return &ActivityLogService{db: db, log: log}
}

// Record never fails the admin action it describes: errors are logged and
// returned only for callers that care.
func (s *ActivityLogService) Record(ctx context.Context, entry models.ActivityLog) error {
	if entry.AdminID == "" {
		s.log.Warn().Str("action", entry.Action).Msg("activity without admin id skipped")
		return nil
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		s.log.Error().Err(err).Str("action", entry.Action).Msg("failed to create activity log")
		return fmt.Errorf("record activity: %w", err)
	}
	s.log.Info().
		Str("action", entry.Action).
		Str("resource", entry.ResourceType+"/"+entry.ResourceID).
		Str("admin", entry.AdminEmail).
		Str("status", entry.Status).
		Msg("activity recorded")
	return nil
}

func (s *ActivityLogService) Recent(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	if limit > MaxActivityLimit {
		limit = MaxActivityLimit
	}
	var logs []models.ActivityLog
	if err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}
	return logs, nil
}

var _ ActivityLog = (*ActivityLogService)(nil)
