package httpx

import (
	"net/http"
	"slices"

	"github.com/codingbarn/barnyard/pkg/slogx"
)

// RequireScope admits the request only when the validated token carries the
// required scope. Each protected operation names exactly one scope; AND/OR
// policies would compose from this but are not needed here.
func RequireScope(required string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			have := scopesFromCtx(r.Context())

			if !slices.Contains(have, required) {
				log := slogx.FromContext(r.Context())
				log.Warn("insufficient scope",
					"client_id", ClientIDFromCtx(r.Context()),
					"required_scope", required,
				)
				ErrMissingScope(required).Write(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
