package domain

import "time"

// IssuedToken is the result of a successful client-credentials exchange.
type IssuedToken struct {
	AccessToken string
	TokenType   string
	ExpiresIn   time.Duration
	Scopes      []string
}
