package push

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

var (
	ErrInvalidSubscription = errors.New("invalid push subscription")
	ErrInvalidMessage      = errors.New("title and body are required")
)

// Subscription is the stored record of one browser push endpoint.
// Endpoint is the natural key: re-subscribing the same browser replaces
// the keys instead of adding a row.
type Subscription struct {
	Endpoint  string    `json:"endpoint" gorm:"primaryKey;type:text"`
	P256dh    string    `json:"p256dh" gorm:"type:text;not null"`
	Auth      string    `json:"auth" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
}

func (Subscription) TableName() string {
	return "push_subscriptions"
}

type Keys struct {
	P256dh string `json:"p256dh" example:"BNcRdreALRFXTkOOUHK1EtK2wtaz5Ry4YfYCA_0QTpQtUbVlUls0VJXg7A8u-Ts1XbjhazAkj7I99e8QcYP7DkM"`
	Auth   string `json:"auth" example:"tBHItJI5svbpez7KI4CCXg"`
}

// BrowserSubscription is the JSON a browser PushManager hands out.
type BrowserSubscription struct {
	Endpoint       string `json:"endpoint" example:"https://fcm.googleapis.com/fcm/send/abc123"`
	ExpirationTime *int64 `json:"expirationTime,omitempty"`
	Keys           Keys   `json:"keys"`
}

func (b BrowserSubscription) Validate() error {
	endpoint := strings.TrimSpace(b.Endpoint)
	if endpoint == "" {
		return fmt.Errorf("%w: endpoint is required", ErrInvalidSubscription)
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" || (u.Scheme != "https" && u.Scheme != "http") {
		return fmt.Errorf("%w: endpoint must be an absolute URL", ErrInvalidSubscription)
	}
	if strings.TrimSpace(b.Keys.P256dh) == "" || strings.TrimSpace(b.Keys.Auth) == "" {
		return fmt.Errorf("%w: keys.p256dh and keys.auth are required", ErrInvalidSubscription)
	}
	return nil
}

// Record converts the browser form into the stored form.
func (b BrowserSubscription) Record(now time.Time) Subscription {
	return Subscription{
		Endpoint:  strings.TrimSpace(b.Endpoint),
		P256dh:    strings.TrimSpace(b.Keys.P256dh),
		Auth:      strings.TrimSpace(b.Keys.Auth),
		CreatedAt: now,
	}
}

func (s Subscription) Browser() BrowserSubscription {
	return BrowserSubscription{
		Endpoint: s.Endpoint,
		Keys:     Keys{P256dh: s.P256dh, Auth: s.Auth},
	}
}
