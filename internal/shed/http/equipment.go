package http

import (
	"fmt"
	"net/http"

	"github.com/codingbarn/barnyard/internal/shed/domain"
	"github.com/codingbarn/barnyard/internal/shed/service"
	"github.com/codingbarn/barnyard/pkg/httpx"
	"github.com/codingbarn/barnyard/pkg/slogx"
)

// EquipmentHandler serves the admin-only inventory endpoints.
type EquipmentHandler struct {
	EquipmentService *service.EquipmentService
}

func (h *EquipmentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	list := domain.EquipmentList{
		Equipment:     h.EquipmentService.AllEquipment(),
		TotalValueUSD: h.EquipmentService.TotalValue(),
	}

	slogx.FromContext(ctx).Info("equipment list accessed",
		"client_id", httpx.ClientIDFromCtx(ctx),
		"total_value_usd", list.TotalValueUSD,
	)

	httpx.WriteJSON(w, http.StatusOK, list)
}

func (h *EquipmentHandler) HandleRemoveAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	lost := h.EquipmentService.RemoveAllEquipment()

	slogx.FromContext(ctx).Warn("all equipment removed",
		"client_id", httpx.ClientIDFromCtx(ctx),
		"total_loss_usd", lost,
	)

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message":      fmt.Sprintf("All equipment removed. Total loss: $%d", lost),
		"totalLossUSD": lost,
	})
}
