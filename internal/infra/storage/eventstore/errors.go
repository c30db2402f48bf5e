package eventstore

import "errors"

var (
	// ErrEventNotFound возвращается, когда событие с тройкой (тип, зал, дата) не найдено
	ErrEventNotFound = errors.New("eventstore: event not found")
)
