package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrInvalidSig = errors.New("jwtx: invalid signature")
	ErrExpired    = errors.New("jwtx: token expired")
	ErrShortKey   = errors.New("jwtx: signing key shorter than 256 bits")
)

// Signer produces signed compact tokens from claims.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// Verifier validates a compact token and gives you back the claims if it's
// legit. Expiry is checked separately from the signature so callers can tell
// a stale token from a forged one.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// HS256 signs and verifies tokens with a single shared HMAC-SHA-256 key.
// The issuer and every validator must be configured with the same key.
type HS256 struct {
	key []byte
}

// NewHS256 creates a symmetric signer/verifier. Keys shorter than 32 bytes
// are rejected since HMAC-SHA-256 security degrades below the hash size.
func NewHS256(key []byte) (*HS256, error) {
	if len(key) < 32 {
		return nil, ErrShortKey
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &HS256{key: k}, nil
}

func (h *HS256) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign takes your claims and turns them into a signed compact JWT string.
func (h *HS256) Sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.key)
}

// Verify checks the compact token's structure and signature, then its expiry.
// Any parse, algorithm, or signature problem maps to ErrMalformed or
// ErrInvalidSig; an authentic-but-stale token maps to ErrExpired.
func (h *HS256) Verify(tokenStr string) (Claims, error) {
	// Claims validation is deferred so a bad signature and a stale token
	// surface as different errors.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return h.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return Claims{}, fmt.Errorf("%w: %w", ErrInvalidSig, err)
		}
		return Claims{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return Claims{}, ErrMalformed
	}

	if err := claims.ValidateExpiry(time.Now().UTC()); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}
