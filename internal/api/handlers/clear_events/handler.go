package clear_events

import (
	"net/http"

	"github.com/m04kA/SMC-EventPlanner/internal/api/handlers"
)

type Handler struct {
	service EventService
	logger  Logger
}

func NewHandler(service EventService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/events/all
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Clear(r.Context())
	if err != nil {
		h.logger.Error("DELETE /events/all - Failed to clear events: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /events/all - Removed %d event(s)", result.Removed)
	handlers.RespondJSON(w, http.StatusOK, result)
}
