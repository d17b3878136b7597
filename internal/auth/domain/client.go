package domain

import "time"

// Client is a registered party application. Scopes is the full set the
// client may ever request; individual tokens carry a subset.
type Client struct {
	ID         string
	Name       string
	SecretHash string
	Scopes     []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasScopes reports whether every scope in requested is covered by the
// client's registered scopes.
func (c Client) HasScopes(requested []string) bool {
	return len(c.MissingScopes(requested)) == 0
}

// MissingScopes returns the requested scopes the client is not registered
// for, preserving request order.
func (c Client) MissingScopes(requested []string) []string {
	allowed := make(map[string]struct{}, len(c.Scopes))
	for _, s := range c.Scopes {
		allowed[s] = struct{}{}
	}

	var missing []string
	for _, s := range requested {
		if _, ok := allowed[s]; !ok {
			missing = append(missing, s)
		}
	}
	return missing
}
