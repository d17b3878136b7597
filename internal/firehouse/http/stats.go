package http

import (
	"net/http"

	"github.com/codingbarn/barnyard/internal/firehouse/service"
	"github.com/codingbarn/barnyard/pkg/httpx"
)

// StatsHandler exposes both halves of the comparison: how hard polling
// worked versus what the webhook simply received.
type StatsHandler struct {
	Poller   *service.Poller
	Receiver *service.Receiver
}

func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"polling": h.Poller.Stats(),
		"events":  h.Receiver.Stats(),
	})
}
