package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityLog records one admin action on the catalog or the push pipeline.
type ActivityLog struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	AdminID      string         `json:"admin_id" gorm:"type:text;not null;index:idx_activity_admin_date,priority:1"`
	AdminEmail   string         `json:"admin_email"`
	Action       string         `json:"action" gorm:"not null;index"`
	ResourceType string         `json:"resource_type" gorm:"not null;index"`
	ResourceID   string         `json:"resource_id" gorm:"index"`
	ResourceName string         `json:"resource_name"`
	Changes      datatypes.JSON `json:"changes" gorm:"type:jsonb"` // {before: {...}, after: {...}}
	Status       string         `json:"status" gorm:"not null"`
	ErrorMessage string         `json:"error_message,omitempty"`
	IPAddress    string         `json:"ip_address"`
	UserAgent    string         `json:"user_agent"`
	CreatedAt    time.Time      `json:"created_at" gorm:"autoCreateTime;index:idx_activity_admin_date,priority:2,sort:desc"`
}

func (al *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if al.ID == uuid.Nil {
		al.ID = uuid.Must(uuid.NewV7())
	}
	if al.Status == "" {
		al.Status = LogSuccess
	}
	return nil
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}

type ActivityChanges struct {
	Before any `json:"before,omitempty"`
	After  any `json:"after,omitempty"`
}

// NewChanges encodes a before/after pair for the jsonb column. Unencodable
// values yield nil rather than failing the action being logged.
func NewChanges(before, after any) datatypes.JSON {
	if before == nil && after == nil {
		return nil
	}
	raw, err := json.Marshal(ActivityChanges{Before: before, After: after})
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

const (
	ActionCreateProduct       = "created_product"
	ActionUpdateProductStatus = "updated_product_status"
	ActionDeleteProduct       = "deleted_product"
	ActionCreateCategory      = "created_category"
	ActionDeleteCategory      = "deleted_category"
	ActionSendNotification    = "sent_notification"
	ActionAddCarouselImages   = "added_carousel_images"
	ActionRemoveCarouselImage = "removed_carousel_image"

	ResourceTypeProduct      = "product"
	ResourceTypeCategory     = "category"
	ResourceTypeNotification = "notification"
	ResourceTypeCarousel     = "carousel_image"

	LogSuccess = "success"
	LogFailed  = "failed"
)
