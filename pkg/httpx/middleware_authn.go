package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/codingbarn/barnyard/pkg/jwtx"
	"github.com/codingbarn/barnyard/pkg/slogx"
)

// AuthnMiddleware gates requests on a valid bearer token. Failures are split
// into three cases the caller can act on: no usable Authorization header,
// a token that fails parse/signature checks, and a token past its expiry.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				ErrMissingAuthHeader.Write(w)
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				if errors.Is(err, jwtx.ErrExpired) {
					ErrExpiredToken.Write(w)
					return
				}
				log.Warn("token verification failed", "err", err)
				ErrInvalidToken.Write(w)
				return
			}

			// Inject into context for downstream handlers.
			ctx = contextWithAuth(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyClientID, c.ClientID())
	ctx = context.WithValue(ctx, CtxKeyScopes, c.Scopes)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}
