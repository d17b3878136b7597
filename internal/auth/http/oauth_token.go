package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/codingbarn/barnyard/internal/auth/service"
	"github.com/codingbarn/barnyard/pkg/authsdk"
	"github.com/codingbarn/barnyard/pkg/httpx"
	"github.com/codingbarn/barnyard/pkg/slogx"
)

// TokenHandler serves POST /oauth/token. Accepts a JSON body with the
// client credentials and the requested scopes.
type TokenHandler struct {
	TokenService *service.TokenService
}

func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.NewError(http.StatusBadRequest, "Malformed request body").Write(w)
		return
	}

	clientID := strings.TrimSpace(req.ClientID)
	if clientID == "" || req.ClientSecret == "" {
		// Absent credentials get the same opaque response as wrong ones.
		httpx.ErrInvalidCredentials.Write(w)
		return
	}

	issued, err := h.TokenService.Issue(ctx, clientID, req.ClientSecret, req.Scopes)
	if err != nil {
		var scopeErr *service.ScopeError
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			httpx.ErrInvalidCredentials.Write(w)
		case errors.As(err, &scopeErr):
			httpx.ErrScopeEscalation(scopeErr.Unauthorized).Write(w)
		default:
			log.Error("token issuance failed", "err", err)
			httpx.ErrInternal.Write(w)
		}
		return
	}

	response := authsdk.TokenResponse{
		AccessToken: issued.AccessToken,
		TokenType:   issued.TokenType,
		ExpiresIn:   int(issued.ExpiresIn.Seconds()),
		Scopes:      issued.Scopes,
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, response)
}
