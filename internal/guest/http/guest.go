package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/codingbarn/barnyard/internal/guest/service"
	"github.com/codingbarn/barnyard/pkg/httpx"
	"github.com/codingbarn/barnyard/pkg/slogx"
)

// GuestHandler exposes the party-guest experiments: grab a token with
// chosen scopes, then see what the shed lets you do with it.
type GuestHandler struct {
	GuestClient *service.GuestClient
}

// TokenParams is the JSON body of POST /guest/token.
type TokenParams struct {
	Scopes []string `json:"scopes"`
}

func (h *GuestHandler) HandleToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var params TokenParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		httpx.NewError(http.StatusBadRequest, "Malformed request body").Write(w)
		return
	}

	info, err := h.GuestClient.RequestToken(ctx, params.Scopes)
	if err != nil {
		slogx.FromContext(ctx).Warn("token request failed", "err", err)

		var wireErr *httpx.Error
		if errors.As(err, &wireErr) {
			// Surface the auth server's verdict as-is so the failure mode
			// is visible to whoever is experimenting.
			wireErr.Write(w)
			return
		}
		httpx.NewError(http.StatusBadGateway, "Auth server unavailable").Write(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, info)
}

func (h *GuestHandler) HandleNowPlaying(w http.ResponseWriter, r *http.Request) {
	song, err := h.GuestClient.NowPlaying(r.Context())
	if err != nil {
		h.writeShedError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, song)
}

func (h *GuestHandler) HandlePlay(w http.ResponseWriter, r *http.Request) {
	songID := r.PathValue("songId")

	song, err := h.GuestClient.PlaySong(r.Context(), songID)
	if err != nil {
		h.writeShedError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, song)
}

func (h *GuestHandler) HandleDeleteEquipment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	log.Warn("attempting to delete equipment (should fail)")

	result, err := h.GuestClient.DeleteEquipment(ctx)
	if err != nil {
		var wireErr *httpx.Error
		if errors.As(err, &wireErr) && wireErr.Status == http.StatusForbidden {
			log.Info("scope enforcement held", "message", wireErr.Message)
			httpx.WriteJSON(w, http.StatusOK, map[string]string{
				"message": fmt.Sprintf("Expected failure: %d - Scope enforcement working!", wireErr.Status),
			})
			return
		}
		h.writeShedError(w, r, err)
		return
	}

	log.Error("unexpected: equipment deletion succeeded")
	httpx.WriteJSON(w, http.StatusOK, result)
}

func (h *GuestHandler) writeShedError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	if errors.Is(err, service.ErrNoToken) {
		httpx.NewError(http.StatusBadRequest, "No token! Request one first with POST /guest/token").Write(w)
		return
	}

	var wireErr *httpx.Error
	if errors.As(err, &wireErr) {
		wireErr.Write(w)
		return
	}

	log.Error("shed call failed", "err", err)
	httpx.NewError(http.StatusBadGateway, "Shed service unavailable").Write(w)
}
