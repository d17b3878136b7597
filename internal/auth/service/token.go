package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/codingbarn/barnyard/internal/auth/domain"
	"github.com/codingbarn/barnyard/internal/auth/store"
	"github.com/codingbarn/barnyard/pkg/cryptox"
	"github.com/codingbarn/barnyard/pkg/jwtx"
	"github.com/codingbarn/barnyard/pkg/slogx"
)

const (
	// MinAccessTTL and MaxAccessTTL bound the configured token lifetime.
	MinAccessTTL = 60 * time.Second
	MaxAccessTTL = 24 * time.Hour
)

// ErrInvalidCredentials covers both unknown client ids and wrong secrets.
// Callers must not be able to tell the two apart.
var ErrInvalidCredentials = errors.New("invalid_credentials")

// ScopeError reports a request for scopes the client is not registered for.
type ScopeError struct {
	Unauthorized []string
}

func (e *ScopeError) Error() string {
	return fmt.Sprintf("client not authorized for scopes: %v", e.Unauthorized)
}

type TokenService struct {
	Signer    jwtx.Signer
	Store     store.Store
	AccessTTL time.Duration
}

// Issue implements the client-credentials exchange: authenticate the
// client, check the requested scopes against its registration, and mint a
// signed access token carrying exactly the requested scopes.
func (s *TokenService) Issue(
	ctx context.Context,
	clientID, clientSecret string,
	scopes []string,
) (*domain.IssuedToken, error) {
	now := time.Now()
	log := slogx.FromContext(ctx)

	client, err := s.Store.Clients().GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info("token request for unknown client", slog.String("client_id", clientID))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := cryptox.VerifySecret(clientSecret, client.SecretHash); err != nil {
		log.Info("client authentication failed", slog.String("client_id", clientID))
		return nil, ErrInvalidCredentials
	}

	if missing := client.MissingScopes(scopes); len(missing) > 0 {
		log.Info("scope escalation rejected",
			slog.String("client_id", clientID),
			slog.Any("unauthorized", missing),
		)
		return nil, &ScopeError{Unauthorized: missing}
	}

	ttl := s.accessTTL()
	accessToken, err := s.Signer.Sign(jwtx.NewAccessClaims(clientID, scopes, ttl, now))
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	log.Info("token issued",
		slog.String("client_id", clientID),
		slog.Any("scopes", scopes),
		slog.Duration("ttl", ttl),
	)

	return &domain.IssuedToken{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   ttl,
		Scopes:      scopes,
	}, nil
}

// accessTTL clamps the configured lifetime into [MinAccessTTL, MaxAccessTTL],
// falling back to the default when unset.
func (s *TokenService) accessTTL() time.Duration {
	ttl := s.AccessTTL
	switch {
	case ttl == 0:
		return jwtx.DefaultAccessTokenTTL
	case ttl < MinAccessTTL:
		return MinAccessTTL
	case ttl > MaxAccessTTL:
		return MaxAccessTTL
	}
	return ttl
}
