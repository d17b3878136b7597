package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/codingbarn/barnyard/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("this-is-a-very-long-secret-key-for-jwt-signing-at-least-256-bits-long")

func TestNewHS256_ShortKey(t *testing.T) {
	_, err := jwtx.NewHS256([]byte("too-short"))
	require.ErrorIs(t, err, jwtx.ErrShortKey)
}

func TestSignVerify_RoundTrip(t *testing.T) {
	h, err := jwtx.NewHS256(testKey)
	require.NoError(t, err)

	now := time.Now().UTC()
	claims := jwtx.NewAccessClaims("harvest-service", []string{"read:nowplaying"}, time.Hour, now)

	tok, err := h.Sign(claims)
	require.NoError(t, err)
	require.Len(t, strings.Split(tok, "."), 3, "compact JWT has three segments")

	got, err := h.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "harvest-service", got.ClientID())
	require.Equal(t, []string{"read:nowplaying"}, got.Scopes)
	require.WithinDuration(t, now.Add(time.Hour), got.ExpiresAtTime(), time.Second)
}

func TestVerify_Expired(t *testing.T) {
	h, err := jwtx.NewHS256(testKey)
	require.NoError(t, err)

	claims := jwtx.NewAccessClaims("harvest-service", []string{"read:nowplaying"},
		time.Second, time.Now().UTC().Add(-2*time.Second))
	tok, err := h.Sign(claims)
	require.NoError(t, err)

	_, err = h.Verify(tok)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestVerify_Tampered(t *testing.T) {
	h, err := jwtx.NewHS256(testKey)
	require.NoError(t, err)

	tok, err := h.Sign(jwtx.NewAccessClaims("admin-app", []string{"admin:equipment"}, time.Hour, time.Now().UTC()))
	require.NoError(t, err)

	flip := func(s string, i int) string {
		b := []byte(s)
		if b[i] == 'A' {
			b[i] = 'B'
		} else {
			b[i] = 'A'
		}
		return string(b)
	}

	segs := strings.Split(tok, ".")

	t.Run("payload bit flip", func(t *testing.T) {
		bad := segs[0] + "." + flip(segs[1], len(segs[1])/2) + "." + segs[2]
		_, err := h.Verify(bad)
		require.Error(t, err)
	})

	t.Run("signature bit flip", func(t *testing.T) {
		// Not the final character: its low bits are base64 padding and a
		// lenient decoder would discard the flip.
		bad := segs[0] + "." + segs[1] + "." + flip(segs[2], len(segs[2])-2)
		_, err := h.Verify(bad)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("missing segment", func(t *testing.T) {
		_, err := h.Verify(segs[0] + "." + segs[1])
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := h.Verify("definitely-not-a-jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})
}

func TestVerify_KeyIsolation(t *testing.T) {
	signer, err := jwtx.NewHS256(testKey)
	require.NoError(t, err)
	other, err := jwtx.NewHS256([]byte(strings.Repeat("different-key-material-", 3)))
	require.NoError(t, err)

	tok, err := signer.Sign(jwtx.NewAccessClaims("party-guest-app", []string{"write:music"}, time.Hour, time.Now().UTC()))
	require.NoError(t, err)

	_, err = other.Verify(tok)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestVerify_NoScopesClaim(t *testing.T) {
	h, err := jwtx.NewHS256(testKey)
	require.NoError(t, err)

	tok, err := h.Sign(jwtx.NewAccessClaims("harvest-service", nil, time.Hour, time.Now().UTC()))
	require.NoError(t, err)

	got, err := h.Verify(tok)
	require.NoError(t, err)
	require.Empty(t, got.Scopes)
	require.False(t, got.HasScope("read:nowplaying"))
}
