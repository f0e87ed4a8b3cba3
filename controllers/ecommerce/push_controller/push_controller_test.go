package push_controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desapego-dos-martins/desapego-backend/controllers/controllertest"
	"github.com/desapego-dos-martins/desapego-backend/models"
)

const endpoint = "https://fcm.googleapis.com/fcm/send/abc123"

func setup(t *testing.T, vapidKey string) (*gin.Engine, *controllertest.PushStore) {
	t.Helper()
	store := controllertest.NewPushStore()
	h := NewHandler(store, vapidKey, zerolog.Nop())
	r := controllertest.Router()
	r.POST("/api/save-subscription", h.SaveSubscription)
	r.GET("/api/vapid-public-key", h.GetVAPIDPublicKey)
	return r, store
}

func subscriptionBody(p256dh string) string {
	return `{"endpoint":"` + endpoint + `","expirationTime":null,"keys":{"p256dh":"` + p256dh + `","auth":"auth-secret"}}`
}

func decode(t *testing.T, body []byte) models.SubscriptionResponse {
	t.Helper()
	var resp models.SubscriptionResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestSaveSubscription(t *testing.T) {
	r, store := setup(t, "")

	w := controllertest.Do(r, controllertest.JSONRequest(http.MethodPost, "/api/save-subscription", subscriptionBody("key-1"), ""))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode(t, w.Body.Bytes()).Success)

	sub, ok := store.Get(endpoint)
	require.True(t, ok)
	assert.Equal(t, "key-1", sub.P256dh)
	assert.Equal(t, "auth-secret", sub.Auth)
}

func TestSaveSubscriptionTwiceKeepsOneRecord(t *testing.T) {
	r, store := setup(t, "")

	for _, key := range []string{"key-1", "key-2"} {
		w := controllertest.Do(r, controllertest.JSONRequest(http.MethodPost, "/api/save-subscription", subscriptionBody(key), ""))
		require.Equal(t, http.StatusOK, w.Code)
	}

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	sub, _ := store.Get(endpoint)
	assert.Equal(t, "key-2", sub.P256dh)
}

func TestSaveSubscriptionRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `endpoint=x`},
		{"missing keys", `{"endpoint":"` + endpoint + `"}`},
		{"relative endpoint", `{"endpoint":"/push","keys":{"p256dh":"a","auth":"b"}}`},
		{"empty auth", `{"endpoint":"` + endpoint + `","keys":{"p256dh":"a","auth":""}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, store := setup(t, "")
			w := controllertest.Do(r, controllertest.JSONRequest(http.MethodPost, "/api/save-subscription", tt.body, ""))
			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decode(t, w.Body.Bytes())
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Error)

			n, _ := store.Count(context.Background())
			assert.Zero(t, n)
		})
	}
}

func TestSaveSubscriptionStoreFailure(t *testing.T) {
	r, store := setup(t, "")
	store.Err = errors.New("connection reset")

	w := controllertest.Do(r, controllertest.JSONRequest(http.MethodPost, "/api/save-subscription", subscriptionBody("key-1"), ""))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, models.SubscriptionResponse{Success: false, Error: "Failed to save subscription"}, decode(t, w.Body.Bytes()))
}

func TestGetVAPIDPublicKey(t *testing.T) {
	r, _ := setup(t, "BPublicKey")
	w := controllertest.Do(r, controllertest.JSONRequest(http.MethodGet, "/api/vapid-public-key", "", ""))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"publicKey":"BPublicKey"}`, w.Body.String())

	r, _ = setup(t, "")
	w = controllertest.Do(r, controllertest.JSONRequest(http.MethodGet, "/api/vapid-public-key", "", ""))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
