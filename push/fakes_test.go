package push

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

type memStore struct {
	mu      sync.Mutex
	subs    map[string]Subscription
	upserts int
	listErr error
}

func newMemStore(subs ...Subscription) *memStore {
	s := &memStore{subs: map[string]Subscription{}}
	for _, sub := range subs {
		s.subs[sub.Endpoint] = sub
	}
	return s
}

func (s *memStore) Upsert(_ context.Context, sub Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upserts++
	s.subs[sub.Endpoint] = sub
	return nil
}

func (s *memStore) List(context.Context) ([]Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]Subscription, 0, len(s.subs))
	for _, sub := range s.subs {
		out = append(out, sub)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Endpoint < out[j].Endpoint })
	return out, nil
}

func (s *memStore) DeleteByEndpoint(_ context.Context, endpoint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, endpoint)
	return nil
}

func (s *memStore) Count(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.subs)), nil
}

func (s *memStore) has(endpoint string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.subs[endpoint]
	return ok
}

// fakeSender answers with a fixed status per endpoint; 2xx by default.
type fakeSender struct {
	mu       sync.Mutex
	status   map[string]int
	block    map[string]bool
	calls    []string
	payloads [][]byte
	delay    time.Duration

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func newFakeSender() *fakeSender {
	return &fakeSender{status: map[string]int{}, block: map[string]bool{}}
}

func (f *fakeSender) Send(ctx context.Context, sub Subscription, payload []byte) (int, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		m := f.maxInFlight.Load()
		if n <= m || f.maxInFlight.CompareAndSwap(m, n) {
			break
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, sub.Endpoint)
	f.payloads = append(f.payloads, payload)
	status, ok := f.status[sub.Endpoint]
	blocked := f.block[sub.Endpoint]
	f.mu.Unlock()

	if blocked {
		<-ctx.Done()
		return 0, ctx.Err()
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if !ok {
		status = 201
	}
	if status < 200 || status >= 300 {
		return status, &DeliveryError{Endpoint: sub.Endpoint, StatusCode: status}
	}
	return status, nil
}

func (f *fakeSender) called() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]string(nil), f.calls...)
	sort.Strings(out)
	return out
}

type countingRecorder struct {
	delivered, failed, pruned atomic.Int32
}

func (r *countingRecorder) Delivered() { r.delivered.Add(1) }
func (r *countingRecorder) Failed(int) { r.failed.Add(1) }
func (r *countingRecorder) Pruned()    { r.pruned.Add(1) }

func testSub(endpoint string) Subscription {
	return Subscription{
		Endpoint:  endpoint,
		P256dh:    "p256dh-" + endpoint,
		Auth:      "auth-" + endpoint,
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

var errBoom = errors.New("boom")
