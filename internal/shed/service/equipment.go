package service

import (
	"slices"
	"sync"

	"github.com/codingbarn/barnyard/internal/shed/domain"
)

// EquipmentService manages the expensive gear stored in the shed. This is
// the inventory a read-only client must never be able to touch.
type EquipmentService struct {
	mu    sync.RWMutex
	items []domain.Equipment
}

func NewEquipmentService() *EquipmentService {
	return &EquipmentService{
		items: []domain.Equipment{
			{ID: "1", Name: "MacBook Pro", Type: "Computer", ValueUSD: 3000},
			{ID: "2", Name: "Focusrite Scarlett 2i2", Type: "Audio Interface", ValueUSD: 180},
			{ID: "3", Name: "KRK Rokit 5", Type: "Studio Monitor (Pair)", ValueUSD: 400},
			{ID: "4", Name: "Shure SM58", Type: "Microphone", ValueUSD: 100},
			{ID: "5", Name: "Audio-Technica AT-LP120", Type: "Turntable", ValueUSD: 300},
			{ID: "6", Name: "Behringer X32", Type: "Mixer", ValueUSD: 2500},
		},
	}
}

// AllEquipment returns a copy of the current inventory.
func (s *EquipmentService) AllEquipment() []domain.Equipment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// TotalValue sums the value of everything currently in the shed.
func (s *EquipmentService) TotalValue() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, item := range s.items {
		total += item.ValueUSD
	}
	return total
}

// RemoveEquipment drops a single item by id.
func (s *EquipmentService) RemoveEquipment(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = slices.DeleteFunc(s.items, func(e domain.Equipment) bool {
		return e.ID == id
	})
}

// RemoveAllEquipment empties the shed and returns the value lost.
func (s *EquipmentService) RemoveAllEquipment() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, item := range s.items {
		total += item.ValueUSD
	}
	s.items = nil
	return total
}
