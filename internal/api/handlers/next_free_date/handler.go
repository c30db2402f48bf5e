package next_free_date

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-EventPlanner/internal/api/handlers"
	"github.com/m04kA/SMC-EventPlanner/internal/service/events"
)

const (
	msgInvalidQuery = "parámetros no válidos: date=YYYY-MM-DD y cantidades enteras por recurso"
	msgRoomNotFound = "sala no encontrada"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/{room}/next-free-date
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	room := mux.Vars(r)["room"]

	req, err := FromQuery(room, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /rooms/{room}/next-free-date - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.NextFreeDate(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, events.ErrRoomNotFound):
			h.logger.Warn("GET /rooms/{room}/next-free-date - Room not found: room=%s", room)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, events.ErrInvalidInput):
			h.logger.Warn("GET /rooms/{room}/next-free-date - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /rooms/{room}/next-free-date - Failed: room=%s, error=%v", room, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
