package add_event

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных (пустой тип, зал, дата, отрицательные количества)
	ErrInvalidInput = errors.New("add_event: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase (например, не удалось сохранить события)
	ErrInternal = errors.New("add_event: internal error")
)

// Результаты допуска для метрик
const (
	resultAccepted = "accepted"
	resultRejected = "rejected"
	resultError    = "error"
)
