package http

import (
	"fmt"
	"net/http"

	"github.com/codingbarn/barnyard/internal/barn/service"
	"github.com/codingbarn/barnyard/pkg/httpx"
	"github.com/codingbarn/barnyard/pkg/slogx"
)

// FragileBarnHandler is the rate-limited barn that simulates a legacy
// system. Its status route sits behind FragileLimit; poll faster than six
// times a minute and it answers 503.
type FragileBarnHandler struct {
	BarnService *service.BarnService
}

func (h *FragileBarnHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.BarnService.Status())
}

func (h *FragileBarnHandler) HandleIgnite(w http.ResponseWriter, r *http.Request) {
	event := h.BarnService.Ignite()
	slogx.FromContext(r.Context()).Warn("fire started in fragile barn", "event_id", event.ID)

	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Fire started at %s", event.Timestamp.Format("15:04:05")),
	})
}

func (h *FragileBarnHandler) HandleExtinguish(w http.ResponseWriter, r *http.Request) {
	h.BarnService.Extinguish()
	slogx.FromContext(r.Context()).Info("fragile barn fire extinguished")

	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Fire extinguished",
	})
}
