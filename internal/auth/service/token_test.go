package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/codingbarn/barnyard/internal/auth/store/drivers/memory"
	"github.com/codingbarn/barnyard/pkg/jwtx"
)

var testSigningKey = []byte("this-is-a-very-long-secret-key-for-jwt-signing-at-least-256-bits-long")

func newTestTokenService(t *testing.T) (*TokenService, *jwtx.HS256) {
	t.Helper()

	st := memory.NewStore()
	clients := &ClientService{Store: st}
	require.NoError(t, clients.Seed(context.Background(), DefaultSeedClients()))

	signer, err := jwtx.NewHS256(testSigningKey)
	require.NoError(t, err)

	return &TokenService{Signer: signer, Store: st}, signer
}

func TestIssue_HappyPath(t *testing.T) {
	svc, verifier := newTestTokenService(t)

	issued, err := svc.Issue(context.Background(), "harvest-service", "harvest-secret-key", []string{"read:nowplaying"})
	require.NoError(t, err)
	require.Equal(t, "Bearer", issued.TokenType)
	require.Equal(t, time.Hour, issued.ExpiresIn)
	require.Equal(t, []string{"read:nowplaying"}, issued.Scopes)

	claims, err := verifier.Verify(issued.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "harvest-service", claims.ClientID())
	require.Equal(t, []string{"read:nowplaying"}, claims.Scopes)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAtTime(), 5*time.Second)
}

func TestIssue_SubsetOfRegisteredScopes(t *testing.T) {
	svc, verifier := newTestTokenService(t)

	issued, err := svc.Issue(context.Background(), "admin-app", "admin-secret-key", []string{"write:music"})
	require.NoError(t, err)

	claims, err := verifier.Verify(issued.AccessToken)
	require.NoError(t, err)
	require.Equal(t, []string{"write:music"}, claims.Scopes)
	require.False(t, claims.HasScope("admin:equipment"))
}

func TestIssue_EmptyScopeRequest(t *testing.T) {
	svc, verifier := newTestTokenService(t)

	issued, err := svc.Issue(context.Background(), "harvest-service", "harvest-secret-key", nil)
	require.NoError(t, err)

	claims, err := verifier.Verify(issued.AccessToken)
	require.NoError(t, err)
	require.Empty(t, claims.Scopes)
}

func TestIssue_BadCredentialsAreOpaque(t *testing.T) {
	svc, _ := newTestTokenService(t)

	_, unknownErr := svc.Issue(context.Background(), "no-such-client", "whatever", nil)
	_, wrongSecretErr := svc.Issue(context.Background(), "harvest-service", "wrong-secret", nil)

	require.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	require.ErrorIs(t, wrongSecretErr, ErrInvalidCredentials)
	require.Equal(t, unknownErr.Error(), wrongSecretErr.Error())
}

func TestIssue_ScopeEscalation(t *testing.T) {
	svc, _ := newTestTokenService(t)

	_, err := svc.Issue(context.Background(), "harvest-service", "harvest-secret-key",
		[]string{"read:nowplaying", "write:music"})
	require.Error(t, err)

	var scopeErr *ScopeError
	require.ErrorAs(t, err, &scopeErr)
	require.Equal(t, []string{"write:music"}, scopeErr.Unauthorized)
}

func TestIssue_EscalationBeatsPartialGrant(t *testing.T) {
	svc, _ := newTestTokenService(t)

	// One bad scope poisons the whole request; nothing is granted.
	_, err := svc.Issue(context.Background(), "party-guest-app", "party-secret-key",
		[]string{"read:nowplaying", "admin:equipment"})

	var scopeErr *ScopeError
	require.ErrorAs(t, err, &scopeErr)
	require.Equal(t, []string{"admin:equipment"}, scopeErr.Unauthorized)
}

func TestAccessTTL_Clamping(t *testing.T) {
	cases := []struct {
		name string
		in   time.Duration
		want time.Duration
	}{
		{"zero falls back to default", 0, jwtx.DefaultAccessTokenTTL},
		{"below minimum clamps up", time.Second, MinAccessTTL},
		{"above maximum clamps down", 48 * time.Hour, MaxAccessTTL},
		{"in range passes through", 30 * time.Minute, 30 * time.Minute},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &TokenService{AccessTTL: tc.in}
			require.Equal(t, tc.want, svc.accessTTL())
		})
	}
}
