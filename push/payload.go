package push

import (
	"strings"
	"time"
)

const (
	DefaultIcon  = "/android-chrome-192x192.png"
	DefaultBadge = "/favicon-32x32.png"
	DefaultURL   = "/"
)

// Message is what an admin asks to broadcast.
type Message struct {
	Title string `json:"title" example:"Novidade no bazar!"`
	Body  string `json:"body" example:"Acabou de chegar uma bicicleta aro 29"`
	URL   string `json:"url,omitempty" example:"/produto/123"`
}

func (m Message) Validate() error {
	if strings.TrimSpace(m.Title) == "" || strings.TrimSpace(m.Body) == "" {
		return ErrInvalidMessage
	}
	return nil
}

// Payload is the JSON body the service worker receives.
type Payload struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	URL       string `json:"url"`
	Icon      string `json:"icon"`
	Badge     string `json:"badge"`
	Timestamp int64  `json:"timestamp"`
}

func NewPayload(m Message, now time.Time) Payload {
	target := strings.TrimSpace(m.URL)
	if target == "" {
		target = DefaultURL
	}
	return Payload{
		Title:     strings.TrimSpace(m.Title),
		Body:      strings.TrimSpace(m.Body),
		URL:       target,
		Icon:      DefaultIcon,
		Badge:     DefaultBadge,
		Timestamp: now.UnixMilli(),
	}
}
