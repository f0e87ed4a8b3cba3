package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

type FlowState string

const (
	StateUnsupported               FlowState = "unsupported"
	StateUnregistered              FlowState = "unregistered"
	StateServiceWorkerRegistered   FlowState = "service_worker_registered"
	StatePermissionRequested       FlowState = "permission_requested"
	StatePermissionGranted         FlowState = "permission_granted"
	StatePermissionDenied          FlowState = "permission_denied"
	StateUnsubscribed              FlowState = "unsubscribed"
	StateSubscriptionCreated       FlowState = "subscription_created"
	StateSubscriptionPersisted     FlowState = "subscription_persisted"
	StateSubscriptionPersistFailed FlowState = "subscription_persist_failed"
)

type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

const (
	MessageSubscriptionComplete = "SUBSCRIPTION_COMPLETE"
	MessagePushSubscribed       = "PUSH_SUBSCRIBED"

	DefaultServiceWorkerURL = "/sw.js"
)

// WorkerMessage is posted from the page to the active service worker.
type WorkerMessage struct {
	Type         string              `json:"type"`
	Subscription BrowserSubscription `json:"subscription"`
}

type Environment interface {
	PushSupported() bool
}

type ServiceWorker interface {
	Register(ctx context.Context, scriptURL string) error
	PostMessage(ctx context.Context, msg WorkerMessage) error
}

type Notifications interface {
	Permission() Permission
	RequestPermission(ctx context.Context) (Permission, error)
}

type PushManager interface {
	// GetSubscription returns nil when the browser holds no subscription.
	GetSubscription(ctx context.Context) (*BrowserSubscription, error)
	Subscribe(ctx context.Context, applicationServerKey []byte) (BrowserSubscription, error)
}

type Persister interface {
	Persist(ctx context.Context, sub BrowserSubscription) error
}

// Browser groups the capabilities the subscribe flow drives.
type Browser struct {
	Env           Environment
	Worker        ServiceWorker
	Notifications Notifications
	Push          PushManager
}

// Flow walks a browser from first visit to a persisted subscription.
// A Flow is single use and not safe for concurrent Run calls.
type Flow struct {
	browser        Browser
	persister      Persister
	vapidPublicKey string
	scriptURL      string
	log            zerolog.Logger

	state   FlowState
	history []FlowState
}

type FlowOption func(*Flow)

func WithServiceWorkerURL(u string) FlowOption {
	return func(f *Flow) { f.scriptURL = u }
}

func WithFlowLogger(l zerolog.Logger) FlowOption {
	return func(f *Flow) { f.log = l }
}

func NewFlow(browser Browser, persister Persister, vapidPublicKey string, opts ...FlowOption) *Flow {
	f := &Flow{
		browser:        browser,
		persister:      persister,
		vapidPublicKey: vapidPublicKey,
		scriptURL:      DefaultServiceWorkerURL,
		log:            zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Flow) State() FlowState { return f.state }

// History lists every state the flow passed through, in order.
func (f *Flow) History() []FlowState {
	return append([]FlowState(nil), f.history...)
}

func (f *Flow) enter(s FlowState) {
	f.state = s
	f.history = append(f.history, s)
	f.log.Debug().Str("state", string(s)).Msg("push flow")
}

// Run drives the flow to a terminal state. The returned error explains a
// stop short of SubscriptionPersisted; Unsupported and PermissionDenied
// are not errors.
func (f *Flow) Run(ctx context.Context) (FlowState, error) {
	b := f.browser
	if b.Env == nil || !b.Env.PushSupported() || b.Worker == nil || b.Notifications == nil || b.Push == nil {
		f.enter(StateUnsupported)
		return f.state, nil
	}

	f.enter(StateUnregistered)
	if err := b.Worker.Register(ctx, f.scriptURL); err != nil {
		return f.state, fmt.Errorf("register service worker: %w", err)
	}
	f.enter(StateServiceWorkerRegistered)

	switch b.Notifications.Permission() {
	case PermissionGranted:
	case PermissionDenied:
		f.enter(StatePermissionDenied)
		return f.state, nil
	default:
		f.enter(StatePermissionRequested)
		perm, err := b.Notifications.RequestPermission(ctx)
		if err != nil || perm != PermissionGranted {
			f.enter(StatePermissionDenied)
			if err != nil {
				return f.state, fmt.Errorf("request permission: %w", err)
			}
			return f.state, nil
		}
	}
	f.enter(StatePermissionGranted)
	f.enter(StateUnsubscribed)

	sub, err := f.subscription(ctx)
	if err != nil {
		return f.state, err
	}
	f.enter(StateSubscriptionCreated)
	f.post(ctx, MessagePushSubscribed, sub)

	if err := f.persister.Persist(ctx, sub); err != nil {
		f.enter(StateSubscriptionPersistFailed)
		return f.state, fmt.Errorf("persist subscription: %w", err)
	}
	f.enter(StateSubscriptionPersisted)
	f.post(ctx, MessageSubscriptionComplete, sub)
	return f.state, nil
}

// subscription reuses the browser's existing subscription or creates one.
func (f *Flow) subscription(ctx context.Context) (BrowserSubscription, error) {
	existing, err := f.browser.Push.GetSubscription(ctx)
	if err != nil {
		return BrowserSubscription{}, fmt.Errorf("get subscription: %w", err)
	}
	if existing != nil {
		return *existing, nil
	}

	key, err := DecodeApplicationServerKey(f.vapidPublicKey)
	if err != nil {
		return BrowserSubscription{}, err
	}
	sub, err := f.browser.Push.Subscribe(ctx, key)
	if err != nil {
		return BrowserSubscription{}, fmt.Errorf("subscribe: %w", err)
	}
	return sub, nil
}

func (f *Flow) post(ctx context.Context, kind string, sub BrowserSubscription) {
	if err := f.browser.Worker.PostMessage(ctx, WorkerMessage{Type: kind, Subscription: sub}); err != nil {
		f.log.Warn().Err(err).Str("type", kind).Msg("post message to service worker")
	}
}

// HTTPPersister sends subscriptions to the save-subscription endpoint.
type HTTPPersister struct {
	baseURL string
	client  *http.Client
}

const SaveSubscriptionPath = "/api/save-subscription"

func NewHTTPPersister(baseURL string, client *http.Client) *HTTPPersister {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPPersister{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (p *HTTPPersister) Persist(ctx context.Context, sub BrowserSubscription) error {
	body, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("encode subscription: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+SaveSubscriptionPath, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("save subscription: %w", err)
	}
	defer resp.Body.Close()

	var out struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&out); err != nil && resp.StatusCode < 300 {
		return fmt.Errorf("decode save response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !out.Success {
		if out.Error != "" {
			return fmt.Errorf("save subscription: status %d: %s", resp.StatusCode, out.Error)
		}
		return fmt.Errorf("save subscription: status %d", resp.StatusCode)
	}
	return nil
}

var _ Persister = (*HTTPPersister)(nil)
