package events

import "errors"

var (
	// ErrEventNotFound возвращается, когда событие с тройкой (тип, зал, дата) не найдено
	ErrEventNotFound = errors.New("event not found")

	// ErrRoomNotFound возвращается, когда зал отсутствует в каталоге
	ErrRoomNotFound = errors.New("room not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
