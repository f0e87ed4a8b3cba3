package push

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// DecodeApplicationServerKey turns a URL-safe base64 VAPID public key into
// the raw bytes PushManager.subscribe expects. Padding is optional.
func DecodeApplicationServerKey(key string) ([]byte, error) {
	key = strings.TrimRight(strings.TrimSpace(key), "=")
	if key == "" {
		return nil, fmt.Errorf("application server key is empty")
	}
	raw, err := base64.RawURLEncoding.DecodeString(key)
	if err != nil {
		return nil, fmt.Errorf("decode application server key: %w", err)
	}
	return raw, nil
}
