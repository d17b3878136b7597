package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/codingbarn/barnyard/internal/firehouse/domain"
	"github.com/codingbarn/barnyard/pkg/slogx"
)

// Poller repeatedly asks the barn whether it is on fire. This is the
// old-fashioned way: most polls learn nothing, and a fire burns for up to a
// full interval before anyone notices.
type Poller struct {
	barnURL    string
	endpoint   string
	interval   time.Duration
	httpClient *http.Client

	totalPolls      atomic.Int64
	successfulPolls atomic.Int64
	failedPolls     atomic.Int64
	firesDetected   atomic.Int64
	totalLatencyMs  atomic.Int64

	mu           sync.Mutex
	fireDetected bool

	stop chan struct{}
	done chan struct{}
}

func NewPoller(barnURL, endpoint string, interval time.Duration) *Poller {
	return &Poller{
		barnURL:    barnURL,
		endpoint:   endpoint,
		interval:   interval,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Start launches the polling loop in its own goroutine.
func (p *Poller) Start(ctx context.Context) {
	go p.loop(ctx)
}

// Stop halts the loop and waits for the in-flight poll to finish.
func (p *Poller) Stop() {
	close(p.stop)
	<-p.done
}

func (p *Poller) loop(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Poll once immediately rather than waiting a full interval.
	p.checkBarn(ctx)

	for {
		select {
		case <-ticker.C:
			p.checkBarn(ctx)
		case <-p.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (p *Poller) checkBarn(ctx context.Context) {
	log := slogx.FromContext(ctx)
	p.totalPolls.Add(1)

	status, err := p.fetchStatus(ctx)
	if err != nil {
		p.failedPolls.Add(1)
		log.Warn("failed to reach barn", "err", err)
		return
	}
	p.successfulPolls.Add(1)

	log.Info("polling barn", "status", status.Status)

	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case status.IsOnFire() && !p.fireDetected:
		p.fireDetected = true
		p.firesDetected.Add(1)

		detected := time.Now()
		var latency time.Duration
		if status.FireStartedAt != nil {
			latency = detected.Sub(*status.FireStartedAt)
			p.totalLatencyMs.Add(latency.Milliseconds())
		}

		log.Error("fire detected by polling",
			"fire_started_at", status.FireStartedAt,
			"detected_at", detected,
			"response_time_ms", latency.Milliseconds(),
			"polling_interval", p.interval,
		)

	case !status.IsOnFire() && p.fireDetected:
		p.fireDetected = false
		log.Info("fire has been extinguished, resuming normal monitoring")
	}
}

func (p *Poller) fetchStatus(ctx context.Context) (domain.BarnStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.barnURL+p.endpoint, nil)
	if err != nil {
		return domain.BarnStatus{}, err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return domain.BarnStatus{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return domain.BarnStatus{}, fmt.Errorf("barn answered %d", resp.StatusCode)
	}

	var status domain.BarnStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return domain.BarnStatus{}, err
	}
	return status, nil
}

// Stats returns a snapshot of the polling counters.
func (p *Poller) Stats() domain.PollingStats {
	fires := p.firesDetected.Load()

	var avg int64
	if fires > 0 {
		avg = p.totalLatencyMs.Load() / fires
	}

	return domain.PollingStats{
		TotalPolls:        int(p.totalPolls.Load()),
		SuccessfulPolls:   int(p.successfulPolls.Load()),
		FailedPolls:       int(p.failedPolls.Load()),
		FiresDetected:     int(fires),
		AvgResponseTimeMs: avg,
		PollingIntervalMs: p.interval.Milliseconds(),
	}
}
