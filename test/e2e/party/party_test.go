package party_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/codingbarn/barnyard/pkg/authsdk"
	"github.com/codingbarn/barnyard/pkg/httpx"
	"github.com/codingbarn/barnyard/pkg/jwtx"
)

// The full happy path: a service acquires a token for a scope it is
// registered for, then uses it at the shed.
func TestParty_HappyPathNowPlaying(t *testing.T) {
	f := newPartyFixture(t)

	tok := f.acquireToken(t, "harvest-service", "harvest-secret-key", []string{"read:nowplaying"})
	require.Equal(t, "Bearer", tok.TokenType)
	require.Equal(t, 3600, tok.ExpiresIn)
	require.Equal(t, []string{"read:nowplaying"}, tok.Scopes)
	t.Logf("acquired token, expires in %ds", tok.ExpiresIn)

	status, body := f.callShed(t, http.MethodGet, "/music/nowplaying", tok.AccessToken)
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, "Harvest Moon")
}

// Asking for a scope the client is not registered for must be rejected at
// the token endpoint, before any token exists.
func TestParty_ScopeEscalationRejected(t *testing.T) {
	f := newPartyFixture(t)

	_, err := f.sdk.RequestToken(context.Background(), authsdk.TokenRequest{
		ClientID:     "harvest-service",
		ClientSecret: "harvest-secret-key",
		Scopes:       []string{"read:nowplaying", "write:music"},
	})
	require.Error(t, err)

	var herr *httpx.Error
	require.True(t, errors.As(err, &herr))
	require.Equal(t, http.StatusForbidden, herr.Status)
	require.Equal(t, "Client not authorized for scopes: [write:music]", herr.Message)
}

// A valid token without the endpoint's scope gets a 403 naming the missing
// scope, and the shed's state is untouched.
func TestParty_InsufficientScopeAtResource(t *testing.T) {
	f := newPartyFixture(t)

	tok := f.acquireToken(t, "party-guest-app", "party-secret-key",
		[]string{"read:nowplaying", "write:music"})

	status, body := f.callShed(t, http.MethodDelete, "/music/equipment", tok.AccessToken)
	require.Equal(t, http.StatusForbidden, status)
	require.JSONEq(t,
		`{"status":403,"message":"Token missing required scope: admin:equipment"}`,
		body)

	// The inventory survived the attempt.
	status, body = f.callShed(t, http.MethodGet, "/music/nowplaying", tok.AccessToken)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, body)
}

// An authentic token past its expiry is told apart from a forged one.
func TestParty_ExpiredToken(t *testing.T) {
	f := newPartyFixture(t)

	// Mint a token that expired a second ago instead of sleeping through a
	// real lifetime.
	claims := jwtx.NewAccessClaims("harvest-service", []string{"read:nowplaying"},
		time.Second, time.Now().UTC().Add(-2*time.Second))
	stale, err := f.signer.Sign(claims)
	require.NoError(t, err)

	status, body := f.callShed(t, http.MethodGet, "/music/nowplaying", stale)
	require.Equal(t, http.StatusUnauthorized, status)
	require.JSONEq(t, `{"status":401,"message":"Token has expired"}`, body)
}

// Flipping one character of the signature must invalidate the token.
func TestParty_TamperedSignature(t *testing.T) {
	f := newPartyFixture(t)

	tok := f.acquireToken(t, "harvest-service", "harvest-secret-key", []string{"read:nowplaying"})

	// Flip a character inside the signature segment, avoiding the final one
	// whose low bits are base64 padding.
	raw := []byte(tok.AccessToken)
	i := len(raw) - 2
	if raw[i] == 'A' {
		raw[i] = 'B'
	} else {
		raw[i] = 'A'
	}

	status, body := f.callShed(t, http.MethodGet, "/music/nowplaying", string(raw))
	require.Equal(t, http.StatusUnauthorized, status)
	require.JSONEq(t, `{"status":401,"message":"Invalid token"}`, body)
}

// Unknown client and wrong secret must be indistinguishable on the wire.
func TestParty_BadCredentialsAreOpaque(t *testing.T) {
	f := newPartyFixture(t)

	_, unknownErr := f.sdk.RequestToken(context.Background(), authsdk.TokenRequest{
		ClientID:     "no-such-client",
		ClientSecret: "whatever",
		Scopes:       []string{"read:nowplaying"},
	})
	_, wrongSecretErr := f.sdk.RequestToken(context.Background(), authsdk.TokenRequest{
		ClientID:     "harvest-service",
		ClientSecret: "not-the-secret",
		Scopes:       []string{"read:nowplaying"},
	})

	var unknown, wrongSecret *httpx.Error
	require.True(t, errors.As(unknownErr, &unknown))
	require.True(t, errors.As(wrongSecretErr, &wrongSecret))

	require.Equal(t, http.StatusUnauthorized, unknown.Status)
	require.Equal(t, "Invalid client credentials", unknown.Message)
	require.Equal(t, *unknown, *wrongSecret)
}
