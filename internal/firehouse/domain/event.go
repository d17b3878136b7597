package domain

import "time"

// BarnStatus mirrors the barn's status payload.
type BarnStatus struct {
	Status        string     `json:"status"`
	FireStartedAt *time.Time `json:"fireStartedAt,omitempty"`
}

func (s BarnStatus) IsOnFire() bool {
	return s.Status == "FIRE"
}

// BarnEvent mirrors the barn's pushed event payload.
type BarnEvent struct {
	ID        string    `json:"id"`
	EventType string    `json:"eventType"`
	Timestamp time.Time `json:"timestamp"`
	BarnID    string    `json:"barnId"`
}

// EventRecord is a received event plus delivery timing, kept for history.
type EventRecord struct {
	Event          BarnEvent `json:"event"`
	ReceivedAt     time.Time `json:"receivedAt"`
	ResponseTimeMs int64     `json:"responseTimeMs"`
}

// PollingStats summarizes the poller's behaviour: how much asking it took
// to notice anything, and how late the answers came.
type PollingStats struct {
	TotalPolls        int   `json:"totalPolls"`
	SuccessfulPolls   int   `json:"successfulPolls"`
	FailedPolls       int   `json:"failedPolls"`
	FiresDetected     int   `json:"firesDetected"`
	AvgResponseTimeMs int64 `json:"avgResponseTimeMs"`
	PollingIntervalMs int64 `json:"pollingIntervalMs"`
}

// EventStats summarizes the webhook receiver's counters.
type EventStats struct {
	TotalEvents       int   `json:"totalEvents"`
	FiresDetected     int   `json:"firesDetected"`
	AvgResponseTimeMs int64 `json:"avgResponseTimeMs"`
}
