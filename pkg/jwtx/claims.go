package jwtx

import (
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is the default lifetime for access tokens issued
// under the client_credentials grant.
const DefaultAccessTokenTTL = 1 * time.Hour

// Claims are the access-token claims shared between the auth server and the
// resource servers that verify its tokens. The subject is always a client id;
// there are no user-level claims in this system.
type Claims struct {
	jwt.RegisteredClaims

	// Permission scopes, e.g. ["read:nowplaying", "write:music"]. A missing
	// claim is treated as an empty set.
	Scopes []string `json:"scopes,omitempty"`
}

// NewAccessClaims builds minimally-correct claims for a machine client.
func NewAccessClaims(clientID string, scopes []string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   clientID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Scopes: scopes,
	}
}

// ClientID returns the subject claim, which for client_credentials tokens is
// the authenticated client's id.
func (c *Claims) ClientID() string { return c.Subject }

// HasScope reports whether the token carries the given scope. Comparison is
// exact string equality; scopes are opaque to the token layer.
func (c *Claims) HasScope(scope string) bool {
	return slices.Contains(c.Scopes, scope)
}

// ExpiresAtTime returns the exp claim, or the zero time when absent.
func (c *Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// ValidateExpiry ensures the token hasn't expired. A token is rejected from
// the exp instant onward, never before it.
func (c *Claims) ValidateExpiry(now time.Time) error {
	if c.ExpiresAt == nil || !now.Before(c.ExpiresAt.Time) {
		return ErrExpired
	}
	return nil
}
