package notification_controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desapego-dos-martins/desapego-backend/controllers/controllertest"
	"github.com/desapego-dos-martins/desapego-backend/middleware"
	"github.com/desapego-dos-martins/desapego-backend/models"
	"github.com/desapego-dos-martins/desapego-backend/push"
)

type countingObserver struct{ n atomic.Int32 }

func (o *countingObserver) ObserveBroadcast(time.Duration) { o.n.Add(1) }

type fixture struct {
	router   *gin.Engine
	store    *controllertest.PushStore
	sender   *controllertest.Sender
	activity *controllertest.Activity
	observer *countingObserver
}

func setup(t *testing.T, subs ...push.Subscription) fixture {
	t.Helper()
	f := fixture{
		store:    controllertest.NewPushStore(subs...),
		sender:   &controllertest.Sender{StatusFor: map[string]int{}},
		activity: &controllertest.Activity{},
		observer: &countingObserver{},
	}
	b := push.NewBroadcaster(f.store, f.sender, push.WithConcurrency(2))
	h := NewHandler(b, f.observer, zerolog.Nop())

	f.router = controllertest.Router()
	api := f.router.Group("/api")
	api.Use(middleware.AdminAuth(controllertest.Auth{}, zerolog.Nop(), middleware.FlagUnauthorized))
	api.Use(middleware.ActivityLogging(f.activity))
	api.POST("/send-notification", h.SendNotification)
	return f
}

func sub(endpoint string) push.Subscription {
	return push.Subscription{Endpoint: endpoint, P256dh: "p256dh", Auth: "auth", CreatedAt: time.Now()}
}

func send(f fixture, body, token string) (int, models.NotificationResponse, []byte) {
	w := controllertest.Do(f.router, controllertest.JSONRequest(http.MethodPost, "/api/send-notification", body, token))
	var resp models.NotificationResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w.Code, resp, w.Body.Bytes()
}

const message = `{"title":"Novidade!","body":"Chegou uma bicicleta aro 29","url":"/produto/1"}`

func TestSendNotificationRequiresAdmin(t *testing.T) {
	f := setup(t, sub("https://push.example/a"))

	for _, token := range []string{"", "wrong"} {
		code, resp, _ := send(f, message, token)
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.False(t, resp.Success)
		assert.NotEmpty(t, resp.Error)
	}
	assert.Empty(t, f.sender.Payloads)
	assert.Zero(t, f.observer.n.Load())
}

func TestSendNotificationPrunesGoneEndpoints(t *testing.T) {
	f := setup(t,
		sub("https://push.example/a"),
		sub("https://push.example/gone"),
		sub("https://push.example/c"),
	)
	f.sender.StatusFor["https://push.example/gone"] = http.StatusGone

	code, resp, raw := send(f, message, controllertest.AdminToken)
	require.Equal(t, http.StatusOK, code, string(raw))
	assert.True(t, resp.Success)

	var body struct {
		Result push.Result `json:"result"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, 3, body.Result.Total)
	assert.Equal(t, 2, body.Result.Sent)
	assert.Equal(t, 1, body.Result.Failed)
	assert.Equal(t, 1, body.Result.Pruned)

	_, ok := f.store.Get("https://push.example/gone")
	assert.False(t, ok)
	assert.EqualValues(t, 1, f.observer.n.Load())

	require.Len(t, f.activity.Entries, 1)
	entry := f.activity.Entries[0]
	assert.Equal(t, models.ActionSendNotification, entry.Action)
	assert.Equal(t, models.LogSuccess, entry.Status)
	assert.Equal(t, "Novidade!", entry.ResourceName)
	assert.Equal(t, controllertest.Admin.ID, entry.AdminID)

	// The pruned endpoint is not attempted again.
	f.sender.Payloads = nil
	code, _, raw = send(f, message, controllertest.AdminToken)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, 2, body.Result.Total)
	assert.Len(t, f.sender.Payloads, 2)
}

func TestSendNotificationWithoutSubscriptions(t *testing.T) {
	f := setup(t)

	code, resp, _ := send(f, message, controllertest.AdminToken)
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, resp.Success)
	assert.Equal(t, push.NoSubscriptionsMessage, resp.Message)
	assert.Nil(t, resp.Result)
}

func TestSendNotificationInvalidMessage(t *testing.T) {
	f := setup(t, sub("https://push.example/a"))

	for _, body := range []string{`{"title":"","body":"x"}`, `{"title":"x","body":"   "}`, `not json`} {
		code, resp, _ := send(f, body, controllertest.AdminToken)
		assert.Equal(t, http.StatusBadRequest, code, body)
		assert.False(t, resp.Success)
	}
	assert.Empty(t, f.sender.Payloads)
}

func TestSendNotificationStoreFailure(t *testing.T) {
	f := setup(t, sub("https://push.example/a"))
	f.store.Err = errors.New("database is down")

	code, resp, _ := send(f, message, controllertest.AdminToken)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Failed to send notification", resp.Error)

	require.Len(t, f.activity.Entries, 1)
	assert.Equal(t, models.LogFailed, f.activity.Entries[0].Status)
}
