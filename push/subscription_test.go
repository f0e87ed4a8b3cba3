package push

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserSubscription_Validate(t *testing.T) {
	valid := BrowserSubscription{
		Endpoint: "https://fcm.googleapis.com/fcm/send/abc",
		Keys:     Keys{P256dh: "key", Auth: "secret"},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name string
		mod  func(b *BrowserSubscription)
	}{
		{"missing endpoint", func(b *BrowserSubscription) { b.Endpoint = "" }},
		{"relative endpoint", func(b *BrowserSubscription) { b.Endpoint = "/push/abc" }},
		{"unsupported scheme", func(b *BrowserSubscription) { b.Endpoint = "ftp://push.example/abc" }},
		{"missing p256dh", func(b *BrowserSubscription) { b.Keys.P256dh = "" }},
		{"missing auth", func(b *BrowserSubscription) { b.Keys.Auth = " " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid
			tt.mod(&b)
			assert.ErrorIs(t, b.Validate(), ErrInvalidSubscription)
		})
	}
}

func TestSaveSubscription_OneRecordPerEndpoint(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	first := BrowserSubscription{Endpoint: "https://push.example/a", Keys: Keys{P256dh: "k1", Auth: "a1"}}
	second := BrowserSubscription{Endpoint: "https://push.example/a", Keys: Keys{P256dh: "k2", Auth: "a2"}}

	require.NoError(t, SaveSubscription(ctx, store, first, now))
	require.NoError(t, SaveSubscription(ctx, store, second, now.Add(time.Hour)))

	n, _ := store.Count(ctx)
	assert.EqualValues(t, 1, n)
	subs, _ := store.List(ctx)
	assert.Equal(t, "k2", subs[0].P256dh)
	assert.Equal(t, "a2", subs[0].Auth)
	assert.Equal(t, now.Add(time.Hour), subs[0].CreatedAt)
}

func TestSaveSubscription_RejectsInvalid(t *testing.T) {
	store := newMemStore()
	err := SaveSubscription(context.Background(), store, BrowserSubscription{Endpoint: "https://push.example/a"}, time.Now())
	assert.ErrorIs(t, err, ErrInvalidSubscription)
	assert.Zero(t, store.upserts)
}

func TestDecodeApplicationServerKey(t *testing.T) {
	raw, err := DecodeApplicationServerKey("BEl62iUYgUivxIkv69yViEuiBIa-Ib9-SkvMeAtA3LFgDzkrxZJjSgSnfckjBJuBkr3qBUYIHBQFLXYp5Nksh8U")
	require.NoError(t, err)
	assert.Len(t, raw, 65)
	assert.Equal(t, byte(0x04), raw[0])

	padded, err := DecodeApplicationServerKey("AQID==")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, padded)

	_, err = DecodeApplicationServerKey("")
	assert.Error(t, err)
	_, err = DecodeApplicationServerKey("not base64!")
	assert.Error(t, err)
}
