package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/codingbarn/barnyard/internal/shed/service"
	"github.com/codingbarn/barnyard/pkg/httpx"
	"github.com/codingbarn/barnyard/pkg/slogx"
)

// MusicHandler serves the playlist endpoints under /music.
type MusicHandler struct {
	MusicService *service.MusicService
}

// PlayRequest is the JSON body of POST /music/play.
type PlayRequest struct {
	SongID string `json:"songId"`
}

func (h *MusicHandler) HandleNowPlaying(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	song := h.MusicService.CurrentSong()

	slogx.FromContext(ctx).Info("now playing accessed",
		"client_id", httpx.ClientIDFromCtx(ctx),
		"title", song.Title,
	)

	httpx.WriteJSON(w, http.StatusOK, song)
}

func (h *MusicHandler) HandlePlaylist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	slogx.FromContext(ctx).Info("playlist accessed", "client_id", httpx.ClientIDFromCtx(ctx))

	httpx.WriteJSON(w, http.StatusOK, h.MusicService.Playlist())
}

func (h *MusicHandler) HandlePlay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req PlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SongID == "" {
		httpx.NewError(http.StatusBadRequest, "Malformed request body").Write(w)
		return
	}

	song, err := h.MusicService.PlaySong(req.SongID)
	if err != nil {
		if errors.Is(err, service.ErrSongNotFound) {
			httpx.NewError(http.StatusNotFound, "Song not found: "+req.SongID).Write(w)
			return
		}
		httpx.ErrInternal.Write(w)
		return
	}

	slogx.FromContext(ctx).Info("song changed",
		"client_id", httpx.ClientIDFromCtx(ctx),
		"title", song.Title,
	)

	httpx.WriteJSON(w, http.StatusOK, song)
}

func (h *MusicHandler) HandleNext(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	song := h.MusicService.NextSong()

	slogx.FromContext(ctx).Info("skipped to next song",
		"client_id", httpx.ClientIDFromCtx(ctx),
		"title", song.Title,
	)

	httpx.WriteJSON(w, http.StatusOK, song)
}
