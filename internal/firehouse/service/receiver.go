package service

import (
	"context"
	"sync"
	"time"

	"github.com/codingbarn/barnyard/internal/firehouse/domain"
	"github.com/codingbarn/barnyard/pkg/slogx"
)

// historyLimit bounds the receiver's in-memory event history.
const historyLimit = 100

// Receiver is the webhook end of the system: the barn pushes events here
// the instant they happen. It keeps counters and a bounded history of the
// most recent events.
type Receiver struct {
	mu             sync.Mutex
	eventsReceived int
	firesDetected  int
	totalLatencyMs int64
	history        []domain.EventRecord
}

func NewReceiver() *Receiver {
	return &Receiver{}
}

// Handle processes one pushed event and returns its delivery latency.
func (r *Receiver) Handle(ctx context.Context, event domain.BarnEvent) time.Duration {
	log := slogx.FromContext(ctx)

	receivedAt := time.Now()
	latency := receivedAt.Sub(event.Timestamp)

	r.mu.Lock()
	r.eventsReceived++
	r.history = append(r.history, domain.EventRecord{
		Event:          event,
		ReceivedAt:     receivedAt,
		ResponseTimeMs: latency.Milliseconds(),
	})
	if len(r.history) > historyLimit {
		r.history = r.history[len(r.history)-historyLimit:]
	}
	if event.EventType == "FIRE" {
		r.firesDetected++
		r.totalLatencyMs += latency.Milliseconds()
	}
	r.mu.Unlock()

	switch event.EventType {
	case "FIRE":
		log.Error("fire event received",
			"barn_id", event.BarnID,
			"fire_started", event.Timestamp,
			"received_at", receivedAt,
			"response_time_ms", latency.Milliseconds(),
		)
	case "EXTINGUISHED":
		log.Info("fire extinguished",
			"barn_id", event.BarnID,
			"response_time_ms", latency.Milliseconds(),
		)
	default:
		log.Info("event received",
			"event_type", event.EventType,
			"barn_id", event.BarnID,
			"response_time_ms", latency.Milliseconds(),
		)
	}

	return latency
}

// Stats returns a snapshot of the receiver's counters.
func (r *Receiver) Stats() domain.EventStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	var avg int64
	if r.firesDetected > 0 {
		avg = r.totalLatencyMs / int64(r.firesDetected)
	}

	return domain.EventStats{
		TotalEvents:       r.eventsReceived,
		FiresDetected:     r.firesDetected,
		AvgResponseTimeMs: avg,
	}
}

// History returns a copy of the recent event records, oldest first.
func (r *Receiver) History() []domain.EventRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.EventRecord, len(r.history))
	copy(out, r.history)
	return out
}
