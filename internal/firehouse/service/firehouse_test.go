package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/codingbarn/barnyard/internal/firehouse/domain"
	"github.com/codingbarn/barnyard/pkg/httpx"
)

func TestReceiver_CountsAndHistory(t *testing.T) {
	r := NewReceiver()

	start := time.Now().Add(-50 * time.Millisecond)
	latency := r.Handle(context.Background(), domain.BarnEvent{
		ID: "01TEST", EventType: "FIRE", Timestamp: start, BarnID: "main-barn",
	})
	require.GreaterOrEqual(t, latency, 50*time.Millisecond)

	r.Handle(context.Background(), domain.BarnEvent{
		ID: "02TEST", EventType: "EXTINGUISHED", Timestamp: time.Now(), BarnID: "main-barn",
	})

	stats := r.Stats()
	require.Equal(t, 2, stats.TotalEvents)
	require.Equal(t, 1, stats.FiresDetected)
	require.GreaterOrEqual(t, stats.AvgResponseTimeMs, int64(50))

	history := r.History()
	require.Len(t, history, 2)
	require.Equal(t, "01TEST", history[0].Event.ID)
}

func TestReceiver_HistoryIsBounded(t *testing.T) {
	r := NewReceiver()

	for i := range 150 {
		r.Handle(context.Background(), domain.BarnEvent{
			ID:        fmt.Sprintf("evt-%03d", i),
			EventType: "TEST",
			Timestamp: time.Now(),
			BarnID:    "main-barn",
		})
	}

	history := r.History()
	require.Len(t, history, 100)
	require.Equal(t, "evt-050", history[0].Event.ID)
	require.Equal(t, "evt-149", history[99].Event.ID)
	require.Equal(t, 150, r.Stats().TotalEvents)
}

func TestPoller_DetectsFire(t *testing.T) {
	fireStarted := time.Now().Add(-3 * time.Second)
	var onFire atomic.Bool

	barn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := domain.BarnStatus{Status: "OK"}
		if onFire.Load() {
			status = domain.BarnStatus{Status: "FIRE", FireStartedAt: &fireStarted}
		}
		httpx.WriteJSON(w, http.StatusOK, status)
	}))
	defer barn.Close()

	p := NewPoller(barn.URL, "/barn/status", 10*time.Millisecond)
	p.Start(context.Background())
	defer p.Stop()

	require.Eventually(t, func() bool {
		return p.Stats().SuccessfulPolls >= 2
	}, time.Second, 5*time.Millisecond)
	require.Zero(t, p.Stats().FiresDetected)

	onFire.Store(true)

	require.Eventually(t, func() bool {
		return p.Stats().FiresDetected == 1
	}, time.Second, 5*time.Millisecond)

	// Detection lag includes the whole time the barn burned unnoticed.
	require.GreaterOrEqual(t, p.Stats().AvgResponseTimeMs, int64(3000))

	// A fire still burning is only counted once.
	require.Eventually(t, func() bool {
		stats := p.Stats()
		return stats.TotalPolls > stats.FiresDetected+2 && stats.FiresDetected == 1
	}, time.Second, 5*time.Millisecond)
}

func TestPoller_CountsFailures(t *testing.T) {
	barn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.NewError(http.StatusServiceUnavailable, "System overloaded").Write(w)
	}))
	defer barn.Close()

	p := NewPoller(barn.URL, "/fragile-barn/status", 10*time.Millisecond)
	p.Start(context.Background())
	defer p.Stop()

	require.Eventually(t, func() bool {
		return p.Stats().FailedPolls >= 3
	}, time.Second, 5*time.Millisecond)
	require.Zero(t, p.Stats().SuccessfulPolls)
}
