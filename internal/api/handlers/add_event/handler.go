package add_event

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-EventPlanner/internal/api/handlers"
	"github.com/m04kA/SMC-EventPlanner/internal/domain"
	addEvent "github.com/m04kA/SMC-EventPlanner/internal/usecase/add_event"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud no válido"
	msgInvalidDate        = "formato de fecha no válido, se espera YYYY-MM-DD"
	msgInvalidInput       = "el evento debe indicar tipo, sala, fecha y cantidades no negativas"
	msgRejected           = "el evento no cumple las restricciones"
)

type Handler struct {
	useCase AddEventUseCase
	logger  Logger
}

func NewHandler(useCase AddEventUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/events
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req AddEventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /events - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /events - Invalid date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var violations domain.Violations
		switch {
		case errors.As(err, &violations):
			h.logger.Warn("POST /events - Event rejected: type=%s, room=%s, date=%s, violations=%d",
				req.Type, req.Room, req.Date, len(violations))
			handlers.RespondRejected(w, msgRejected, violations)

		case errors.Is(err, addEvent.ErrInvalidInput):
			h.logger.Warn("POST /events - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /events - Failed to add event: type=%s, room=%s, date=%s, error=%v",
				req.Type, req.Room, req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /events - Event added successfully: type=%s, room=%s, date=%s",
		result.Type, result.Room, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
