package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/codingbarn/barnyard/internal/firehouse/domain"
	"github.com/codingbarn/barnyard/internal/firehouse/service"
	"github.com/codingbarn/barnyard/pkg/httpx"
)

// EventsHandler is the webhook the barn pushes into. No polling, no delay.
type EventsHandler struct {
	Receiver *service.Receiver
}

func (h *EventsHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	var event domain.BarnEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		httpx.NewError(http.StatusBadRequest, "Malformed event body").Write(w)
		return
	}

	latency := h.Receiver.Handle(r.Context(), event)

	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Event processed in %dms", latency.Milliseconds()),
	})
}

func (h *EventsHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.Receiver.History())
}
