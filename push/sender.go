package push

import (
	"context"
	"fmt"
	"io"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
)

// Sender delivers one encrypted payload to one endpoint.
type Sender interface {
	Send(ctx context.Context, sub Subscription, payload []byte) (int, error)
}

// DeliveryError is returned when the push service answers with a non-2xx status.
type DeliveryError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *DeliveryError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("push service returned %d", e.StatusCode)
	}
	return fmt.Sprintf("push service returned %d: %s", e.StatusCode, e.Body)
}

// Gone reports whether the endpoint is permanently invalid and should be removed.
func (e *DeliveryError) Gone() bool {
	return e.StatusCode == http.StatusGone || e.StatusCode == http.StatusNotFound
}

type VAPIDConfig struct {
	PublicKey  string
	PrivateKey string
	// Subject is a mailto: or https: contact URL.
	Subject string
	// TTL in seconds the push service keeps an undelivered message.
	TTL int
}

const DefaultTTL = 24 * 60 * 60

type WebPushSender struct {
	vapid  VAPIDConfig
	client *http.Client
}

func NewWebPushSender(vapid VAPIDConfig, client *http.Client) *WebPushSender {
	if vapid.TTL <= 0 {
		vapid.TTL = DefaultTTL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &WebPushSender{vapid: vapid, client: client}
}

func (s *WebPushSender) Send(ctx context.Context, sub Subscription, payload []byte) (int, error) {
	resp, err := webpush.SendNotificationWithContext(ctx, payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		HTTPClient:      s.client,
		Subscriber:      s.vapid.Subject,
		VAPIDPublicKey:  s.vapid.PublicKey,
		VAPIDPrivateKey: s.vapid.PrivateKey,
		TTL:             s.vapid.TTL,
		Urgency:         webpush.UrgencyNormal,
	})
	if err != nil {
		return 0, fmt.Errorf("send push: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return resp.StatusCode, &DeliveryError{
			Endpoint:   sub.Endpoint,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}
	return resp.StatusCode, nil
}
