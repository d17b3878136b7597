package service

import (
	"sync"
	"time"

	"github.com/codingbarn/barnyard/internal/barn/domain"
	"github.com/codingbarn/barnyard/pkg/idx"
)

// BarnService holds the barn's state. The barn never volunteers
// information through this type; event fan-out is the Broadcaster's job.
type BarnService struct {
	barnID string

	mu     sync.RWMutex
	status domain.BarnStatus
}

func NewBarnService(barnID string) *BarnService {
	return &BarnService{
		barnID: barnID,
		status: domain.OK(),
	}
}

// Status returns the current state.
func (s *BarnService) Status() domain.BarnStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Ignite sets the barn on fire and returns the corresponding event.
func (s *BarnService) Ignite() domain.BarnEvent {
	now := time.Now()

	s.mu.Lock()
	s.status = domain.OnFire(now)
	s.mu.Unlock()

	return domain.BarnEvent{
		ID:        idx.New().String(),
		EventType: domain.EventFire,
		Timestamp: now,
		BarnID:    s.barnID,
	}
}

// Extinguish puts the fire out and returns the corresponding event.
func (s *BarnService) Extinguish() domain.BarnEvent {
	s.mu.Lock()
	s.status = domain.OK()
	s.mu.Unlock()

	return domain.BarnEvent{
		ID:        idx.New().String(),
		EventType: domain.EventExtinguished,
		Timestamp: time.Now(),
		BarnID:    s.barnID,
	}
}
