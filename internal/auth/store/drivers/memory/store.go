// Package memory provides an in-memory Store for tests and ephemeral runs.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/codingbarn/barnyard/internal/auth/domain"
	"github.com/codingbarn/barnyard/internal/auth/store"
)

type Store struct {
	mu      sync.RWMutex
	clients map[string]domain.Client
}

func NewStore() *Store {
	return &Store{clients: make(map[string]domain.Client)}
}

func (s *Store) Clients() store.Clients { return (*clientsRepo)(s) }

func (s *Store) ApplyMigrations() error { return nil }

func (s *Store) Close() error { return nil }

func (s *Store) Ping(_ context.Context) error { return nil }

type clientsRepo Store

func (r *clientsRepo) GetClientByID(_ context.Context, id string) (domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.clients[id]
	if !ok {
		return domain.Client{}, store.ErrNotFound
	}
	return c, nil
}

func (r *clientsRepo) CreateClient(_ context.Context, c domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[c.ID]; ok {
		return store.ErrAlreadyExists
	}

	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	c.Scopes = slices.Clone(c.Scopes)
	r.clients[c.ID] = c
	return nil
}

func (r *clientsRepo) ListClients(_ context.Context) ([]domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clients := make([]domain.Client, 0, len(r.clients))
	for _, c := range r.clients {
		clients = append(clients, c)
	}
	slices.SortFunc(clients, func(a, b domain.Client) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return clients, nil
}
