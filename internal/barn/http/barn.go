package http

import (
	"fmt"
	"net/http"

	"github.com/codingbarn/barnyard/internal/barn/service"
	"github.com/codingbarn/barnyard/pkg/httpx"
	"github.com/codingbarn/barnyard/pkg/slogx"
)

// BarnHandler serves the event-driven barn. When something happens, all
// registered subscribers are notified immediately; nobody has to poll.
type BarnHandler struct {
	BarnService *service.BarnService
	Broadcaster *service.Broadcaster
}

// SubscriptionResponse reports the result of a subscribe/unsubscribe call.
type SubscriptionResponse struct {
	CallbackURL      string `json:"callbackUrl"`
	Subscribed       bool   `json:"subscribed"`
	TotalSubscribers int    `json:"totalSubscribers"`
}

func (h *BarnHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.BarnService.Status())
}

func (h *BarnHandler) HandleIgnite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	event := h.BarnService.Ignite()
	log.Warn("fire started", "barn_id", event.BarnID, "event_id", event.ID)

	notified := h.Broadcaster.Notify(ctx, event)
	log.Warn("subscribers notified immediately", "count", notified)

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message":  fmt.Sprintf("Fire started at %s. Notified %d subscribers.", event.Timestamp.Format("15:04:05"), notified),
		"event":    event,
		"notified": notified,
	})
}

func (h *BarnHandler) HandleExtinguish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	event := h.BarnService.Extinguish()
	notified := h.Broadcaster.Notify(ctx, event)

	log.Info("fire extinguished", "notified", notified)

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message":  fmt.Sprintf("Fire extinguished. Notified %d subscribers.", notified),
		"event":    event,
		"notified": notified,
	})
}

func (h *BarnHandler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	callbackURL := r.URL.Query().Get("callbackUrl")
	if callbackURL == "" {
		httpx.NewError(http.StatusBadRequest, "callbackUrl query parameter is required").Write(w)
		return
	}

	total := h.Broadcaster.Subscribe(callbackURL)
	slogx.FromContext(r.Context()).Info("subscriber registered",
		"callback_url", callbackURL,
		"total", total,
	)

	httpx.WriteJSON(w, http.StatusOK, SubscriptionResponse{
		CallbackURL:      callbackURL,
		Subscribed:       true,
		TotalSubscribers: total,
	})
}

func (h *BarnHandler) HandleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	callbackURL := r.URL.Query().Get("callbackUrl")
	if callbackURL == "" {
		httpx.NewError(http.StatusBadRequest, "callbackUrl query parameter is required").Write(w)
		return
	}

	removed, total := h.Broadcaster.Unsubscribe(callbackURL)
	if removed {
		slogx.FromContext(r.Context()).Info("subscriber removed", "callback_url", callbackURL)
	}

	httpx.WriteJSON(w, http.StatusOK, SubscriptionResponse{
		CallbackURL:      callbackURL,
		Subscribed:       false,
		TotalSubscribers: total,
	})
}

func (h *BarnHandler) HandleSubscribers(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.Broadcaster.Subscribers())
}
