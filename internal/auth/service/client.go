package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/codingbarn/barnyard/internal/auth/domain"
	"github.com/codingbarn/barnyard/internal/auth/store"
	"github.com/codingbarn/barnyard/pkg/cryptox"
	"github.com/codingbarn/barnyard/pkg/slogx"
)

// SeedClient is a plaintext client definition applied at startup. Secrets
// are hashed before they touch the store.
type SeedClient struct {
	ID     string
	Name   string
	Secret string
	Scopes []string
}

// DefaultSeedClients are the party applications registered out of the box.
func DefaultSeedClients() []SeedClient {
	return []SeedClient{
		{
			ID:     "harvest-service",
			Name:   "Harvest Service",
			Secret: "harvest-secret-key",
			Scopes: []string{"read:nowplaying"},
		},
		{
			ID:     "party-guest-app",
			Name:   "Party Guest App",
			Secret: "party-secret-key",
			Scopes: []string{"read:nowplaying", "write:music"},
		},
		{
			ID:     "admin-app",
			Name:   "Barn Admin App",
			Secret: "admin-secret-key",
			Scopes: []string{"read:nowplaying", "write:music", "admin:equipment"},
		},
	}
}

type ClientService struct {
	Store store.Store
}

// Seed registers each seed client that does not already exist. Existing
// registrations are left alone so restarts are idempotent.
func (s *ClientService) Seed(ctx context.Context, seeds []SeedClient) error {
	log := slogx.FromContext(ctx)

	for _, seed := range seeds {
		hash, err := cryptox.HashSecret(seed.Secret)
		if err != nil {
			return fmt.Errorf("hash secret for %s: %w", seed.ID, err)
		}

		err = s.Store.Clients().CreateClient(ctx, domain.Client{
			ID:         seed.ID,
			Name:       seed.Name,
			SecretHash: hash,
			Scopes:     seed.Scopes,
		})
		if errors.Is(err, store.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return fmt.Errorf("seed client %s: %w", seed.ID, err)
		}

		log.Info("registered client", "client_id", seed.ID, "scopes", seed.Scopes)
	}

	return nil
}

// List returns all registered clients.
func (s *ClientService) List(ctx context.Context) ([]domain.Client, error) {
	return s.Store.Clients().ListClients(ctx)
}
