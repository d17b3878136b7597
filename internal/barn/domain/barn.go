package domain

import "time"

const (
	StatusOK   = "OK"
	StatusFire = "FIRE"
)

// BarnStatus is the barn's current state. FireStartedAt is nil unless the
// barn is burning.
type BarnStatus struct {
	Status        string     `json:"status"`
	FireStartedAt *time.Time `json:"fireStartedAt,omitempty"`
}

func OK() BarnStatus {
	return BarnStatus{Status: StatusOK}
}

func OnFire(when time.Time) BarnStatus {
	return BarnStatus{Status: StatusFire, FireStartedAt: &when}
}

func (s BarnStatus) IsOnFire() bool {
	return s.Status == StatusFire
}

const (
	EventFire         = "FIRE"
	EventExtinguished = "EXTINGUISHED"
)

// BarnEvent is pushed to subscribers when something significant happens.
type BarnEvent struct {
	ID        string    `json:"id"`
	EventType string    `json:"eventType"`
	Timestamp time.Time `json:"timestamp"`
	BarnID    string    `json:"barnId"`
}
