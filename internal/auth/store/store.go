package store

import (
	"context"
	"errors"

	"github.com/codingbarn/barnyard/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// memory) implement this. Sub-repositories keep concerns tidy and make it
// easy to add tables later without widening one giant interface.
type Store interface {
	Clients() Clients

	ApplyMigrations() error

	// Close releases any underlying resources (optional for memory).
	Close() error

	// Ping verifies the backing storage is still reachable.
	Ping(ctx context.Context) error
}

type Clients interface {
	// GetClientByID returns a client by id, or ErrNotFound.
	GetClientByID(ctx context.Context, id string) (domain.Client, error)

	// CreateClient inserts a new client. Returns ErrAlreadyExists if the
	// id is taken.
	CreateClient(ctx context.Context, c domain.Client) error

	// ListClients returns all registered clients.
	ListClients(ctx context.Context) ([]domain.Client, error)
}
