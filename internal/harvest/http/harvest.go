package http

import (
	"errors"
	"net/http"

	"github.com/codingbarn/barnyard/internal/harvest/domain"
	"github.com/codingbarn/barnyard/internal/harvest/service"
	"github.com/codingbarn/barnyard/pkg/httpx"
	"github.com/codingbarn/barnyard/pkg/slogx"
)

// HarvestHandler serves the public party endpoints. Guests never see the
// token exchange happening against the shed.
type HarvestHandler struct {
	FoodService *service.FoodService
	MusicClient *service.MusicClient
}

func (h *HarvestHandler) HandleFood(w http.ResponseWriter, r *http.Request) {
	slogx.FromContext(r.Context()).Info("guest accessed food menu")
	httpx.WriteJSON(w, http.StatusOK, h.FoodService.AllFood())
}

func (h *HarvestHandler) HandleNowPlaying(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	log.Info("guest accessed now playing info")

	song, err := h.MusicClient.CurrentSong(ctx)
	if err != nil {
		log.Error("failed to fetch current song from shed", "err", err)

		var wireErr *httpx.Error
		if errors.As(err, &wireErr) && wireErr.Status >= http.StatusInternalServerError {
			wireErr.Write(w)
			return
		}
		httpx.NewError(http.StatusBadGateway, "Music service unavailable").Write(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, domain.NowPlayingInfo{
		Title:   song.Title,
		Artist:  song.Artist,
		Message: "♪ Now playing at the harvest party ♪",
	})
}
