package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-EventPlanner/internal/domain"
)

// maxBodyBytes ограничение размера тела запроса
const maxBodyBytes = 1 << 20

const msgInternalError = "error interno del servidor"

// ErrorResponse ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// ViolationResponse нарушение правила
type ViolationResponse struct {
	Kind          string  `json:"kind"`
	Message       string  `json:"message"`
	SuggestedDate *string `json:"suggestedDate,omitempty"`
}

// RejectionResponse ответ при отказе в бронировании
type RejectionResponse struct {
	Error      string              `json:"error"`
	Violations []ViolationResponse `json:"violations"`
}

// DecodeJSON декодирует тело запроса; неизвестные поля считаются ошибкой
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// RespondJSON пишет JSON ответ с указанным статусом; data == nil - пустое тело
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	if data == nil {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError пишет ErrorResponse
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

// RespondBadRequest 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondNotFound 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondInternalError 500
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondRejected 422 со списком нарушений
func RespondRejected(w http.ResponseWriter, message string, violations domain.Violations) {
	resp := RejectionResponse{
		Error:      message,
		Violations: make([]ViolationResponse, 0, len(violations)),
	}
	for _, v := range violations {
		resp.Violations = append(resp.Violations, ViolationResponse{
			Kind:          string(v.Kind),
			Message:       v.Message,
			SuggestedDate: formatDate(v.SuggestedDate),
		})
	}
	RespondJSON(w, http.StatusUnprocessableEntity, resp)
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(domain.DateFormat)
	return &s
}
