package authsdk

import (
	"context"
	"sync"
	"time"

	"github.com/codingbarn/barnyard/pkg/slogx"
)

// DefaultSafetyMargin is subtracted from a token's real lifetime when
// caching, so a token is never presented moments before it expires in
// transit.
const DefaultSafetyMargin = 60 * time.Second

// TokenSource caches one token for a fixed (auth server, client id, scope
// set) tuple. Acquisition is serialised under the mutex, so concurrent
// callers observing a stale slot produce a single upstream call and share
// its result. Different scope sets need distinct TokenSources.
type TokenSource struct {
	client       *Client
	clientID     string
	clientSecret string
	scopes       []string
	margin       time.Duration

	mu             sync.Mutex
	token          string
	effectiveUntil time.Time

	now func() time.Time // test hook
}

// NewTokenSource builds a TokenSource with the default safety margin.
func NewTokenSource(client *Client, clientID, clientSecret string, scopes []string) *TokenSource {
	return &TokenSource{
		client:       client,
		clientID:     clientID,
		clientSecret: clientSecret,
		scopes:       scopes,
		margin:       DefaultSafetyMargin,
		now:          time.Now,
	}
}

// Token returns a valid cached bearer token, acquiring a fresh one from the
// auth server when the slot is empty or past its effective-until instant.
// Acquisition failures leave the slot untouched and propagate to the caller.
func (ts *TokenSource) Token(ctx context.Context) (string, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	now := ts.now()
	if ts.token != "" && now.Before(ts.effectiveUntil) {
		return ts.token, nil
	}

	log := slogx.FromContext(ctx)
	log.Info("requesting new token from auth server", "client_id", ts.clientID)

	resp, err := ts.client.RequestToken(ctx, TokenRequest{
		ClientID:     ts.clientID,
		ClientSecret: ts.clientSecret,
		Scopes:       ts.scopes,
	})
	if err != nil {
		return "", err
	}

	ts.token = resp.AccessToken
	ts.effectiveUntil = now.Add(time.Duration(resp.ExpiresIn)*time.Second - ts.margin)

	log.Info("token acquired", "client_id", ts.clientID, "expires_in", resp.ExpiresIn)

	return ts.token, nil
}

// Invalidate evicts the slot if it still holds the given token. Call this
// after a 401 from the resource server: the next Token call re-acquires.
// Passing the stale value keeps a concurrent acquisition's fresh token from
// being thrown away.
func (ts *TokenSource) Invalidate(stale string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.token == stale {
		ts.token = ""
		ts.effectiveUntil = time.Time{}
	}
}
