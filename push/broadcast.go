package push

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/desapego-dos-martins/desapego-backend/utils"
)

const (
	DefaultConcurrency     = 10
	DefaultDeliveryTimeout = 10 * time.Second

	NoSubscriptionsMessage = "Nenhuma assinatura encontrada"
)

// Outcome is the result of delivering to a single endpoint.
type Outcome struct {
	Endpoint   string
	StatusCode int
	Err        error
	Pruned     bool
}

func (o Outcome) Delivered() bool { return o.Err == nil }

// Result aggregates one broadcast.
type Result struct {
	Success  bool      `json:"success"`
	Total    int       `json:"total"`
	Sent     int       `json:"sent"`
	Failed   int       `json:"failed"`
	Pruned   int       `json:"pruned"`
	Message  string    `json:"message,omitempty"`
	Outcomes []Outcome `json:"-"`
}

// Recorder observes deliveries. Implementations must be safe for concurrent use.
type Recorder interface {
	Delivered()
	Failed(statusCode int)
	Pruned()
}

type nopRecorder struct{}

func (nopRecorder) Delivered() {}
func (nopRecorder) Failed(int) {}
func (nopRecorder) Pruned()    {}

type Broadcaster struct {
	store       Store
	sender      Sender
	log         zerolog.Logger
	recorder    Recorder
	concurrency int
	timeout     time.Duration
	now         func() time.Time
}

type BroadcasterOption func(*Broadcaster)

func WithConcurrency(n int) BroadcasterOption {
	return func(b *Broadcaster) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

func WithDeliveryTimeout(d time.Duration) BroadcasterOption {
	return func(b *Broadcaster) {
		if d > 0 {
			b.timeout = d
		}
	}
}

func WithLogger(l zerolog.Logger) BroadcasterOption {
	return func(b *Broadcaster) { b.log = l }
}

func WithRecorder(r Recorder) BroadcasterOption {
	return func(b *Broadcaster) {
		if r != nil {
			b.recorder = r
		}
	}
}

func WithClock(now func() time.Time) BroadcasterOption {
	return func(b *Broadcaster) { b.now = now }
}

func NewBroadcaster(store Store, sender Sender, opts ...BroadcasterOption) *Broadcaster {
	b := &Broadcaster{
		store:       store,
		sender:      sender,
		log:         zerolog.Nop(),
		recorder:    nopRecorder{},
		concurrency: DefaultConcurrency,
		timeout:     DefaultDeliveryTimeout,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Broadcast sends msg to every stored subscription. Endpoints that answer
// 404 or 410 are deleted. A failed endpoint never aborts the others.
func (b *Broadcaster) Broadcast(ctx context.Context, msg Message) (Result, error) {
	if err := msg.Validate(); err != nil {
		return Result{Success: false, Message: err.Error()}, err
	}

	subs, err := b.store.List(ctx)
	if err != nil {
		return Result{Success: false, Message: "Erro ao carregar assinaturas"}, fmt.Errorf("broadcast: %w", err)
	}
	if len(subs) == 0 {
		return Result{Success: false, Message: NoSubscriptionsMessage}, nil
	}

	body, err := json.Marshal(NewPayload(msg, b.now()))
	if err != nil {
		return Result{Success: false, Message: "Erro ao montar notificação"}, fmt.Errorf("encode payload: %w", err)
	}

	outcomes := make([]Outcome, len(subs))
	var g errgroup.Group
	g.SetLimit(b.concurrency)
	for i, sub := range subs {
		i, sub := i, sub
		g.Go(func() error {
			outcomes[i] = b.deliver(ctx, sub, body)
			return nil
		})
	}
	_ = g.Wait()

	res := Result{Success: true, Total: len(subs), Outcomes: outcomes}
	for _, o := range outcomes {
		if o.Delivered() {
			res.Sent++
		} else {
			res.Failed++
		}
		if o.Pruned {
			res.Pruned++
		}
	}

	b.log.Info().
		Int("total", res.Total).
		Int("sent", res.Sent).
		Int("failed", res.Failed).
		Int("pruned", res.Pruned).
		Msg("broadcast finished")
	return res, nil
}

func (b *Broadcaster) deliver(ctx context.Context, sub Subscription, body []byte) Outcome {
	dctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	status, err := b.sender.Send(dctx, sub, body)
	out := Outcome{Endpoint: sub.Endpoint, StatusCode: status, Err: err}
	if err == nil {
		b.recorder.Delivered()
		return out
	}

	b.recorder.Failed(status)
	var de *DeliveryError
	if !errors.As(err, &de) || !de.Gone() {
		b.log.Warn().Err(err).Str("endpoint", shortEndpoint(sub.Endpoint)).Msg("push delivery failed")
		return out
	}

	if derr := b.store.DeleteByEndpoint(ctx, sub.Endpoint); derr != nil {
		b.log.Error().Err(derr).Str("endpoint", shortEndpoint(sub.Endpoint)).Msg("failed to prune expired subscription")
		return out
	}
	out.Pruned = true
	b.recorder.Pruned()
	b.log.Info().Int("status", status).Str("endpoint", shortEndpoint(sub.Endpoint)).Msg("pruned expired subscription")
	return out
}

func shortEndpoint(endpoint string) string {
	return utils.Truncate(endpoint, 60)
}
