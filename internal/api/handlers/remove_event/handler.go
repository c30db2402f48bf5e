package remove_event

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-EventPlanner/internal/api/handlers"
	"github.com/m04kA/SMC-EventPlanner/internal/domain"
	"github.com/m04kA/SMC-EventPlanner/internal/service/events"
	"github.com/m04kA/SMC-EventPlanner/internal/service/events/models"
)

const (
	msgMissingParams = "se requieren los parámetros type, room y date"
	msgInvalidDate   = "formato de fecha no válido, se espera YYYY-MM-DD"
	msgNotFound      = "Evento no encontrado"
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

// Handle DELETE /api/v1/events?type=&room=&date=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	eventType, room, dateStr := query.Get("type"), query.Get("room"), query.Get("date")

	if eventType == "" || room == "" || dateStr == "" {
		h.logger.Warn("DELETE /events - Missing query parameters")
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	date, err := domain.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("DELETE /events - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	err = h.service.Remove(r.Context(), &models.RemoveEventRequest{
		Type: eventType,
		Room: room,
		Date: date,
	})
	if err != nil {
		switch {
		case errors.Is(err, events.ErrEventNotFound):
			h.logger.Warn("DELETE /events - Event not found: type=%s, room=%s, date=%s", eventType, room, dateStr)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, events.ErrInvalidInput):
			h.logger.Warn("DELETE /events - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgMissingParams)

		default:
			h.logger.Error("DELETE /events - Failed to remove event: type=%s, room=%s, date=%s, error=%v",
				eventType, room, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /events - Event removed successfully: type=%s, room=%s, date=%s", eventType, room, dateStr)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
