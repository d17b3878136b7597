package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/codingbarn/barnyard/internal/barn/domain"
	"github.com/codingbarn/barnyard/pkg/slogx"
)

// DefaultNotifyTimeout bounds each webhook delivery so one slow subscriber
// cannot stall the rest.
const DefaultNotifyTimeout = 2 * time.Second

// Broadcaster keeps the subscriber list and pushes events to every
// registered callback URL. Delivery is synchronous and best-effort: a
// failed callback is logged and skipped, never retried.
type Broadcaster struct {
	httpClient    *http.Client
	notifyTimeout time.Duration

	mu          sync.RWMutex
	subscribers []string
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		httpClient:    &http.Client{Timeout: DefaultNotifyTimeout},
		notifyTimeout: DefaultNotifyTimeout,
	}
}

// Subscribe registers a callback URL. Re-subscribing is a no-op. Returns
// the total subscriber count.
func (b *Broadcaster) Subscribe(callbackURL string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !slices.Contains(b.subscribers, callbackURL) {
		b.subscribers = append(b.subscribers, callbackURL)
	}
	return len(b.subscribers)
}

// Unsubscribe removes a callback URL. Returns whether it was present and
// the remaining count.
func (b *Broadcaster) Unsubscribe(callbackURL string) (bool, int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	before := len(b.subscribers)
	b.subscribers = slices.DeleteFunc(b.subscribers, func(u string) bool {
		return u == callbackURL
	})
	return len(b.subscribers) < before, len(b.subscribers)
}

// Subscribers returns a copy of the current subscriber list.
func (b *Broadcaster) Subscribers() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.subscribers)
}

// Notify pushes the event to every subscriber and returns how many
// deliveries succeeded.
func (b *Broadcaster) Notify(ctx context.Context, event domain.BarnEvent) int {
	log := slogx.FromContext(ctx)

	payload, err := json.Marshal(event)
	if err != nil {
		log.Error("failed to encode event", "err", err)
		return 0
	}

	successful := 0
	for _, url := range b.Subscribers() {
		if err := b.deliver(ctx, url, payload); err != nil {
			log.Warn("failed to notify subscriber", "callback_url", url, "err", err)
			continue
		}
		successful++
	}

	return successful
}

func (b *Broadcaster) deliver(ctx context.Context, url string, payload []byte) error {
	ctx, cancel := context.WithTimeout(ctx, b.notifyTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return nil
}
