package snapshot

import "errors"

var (
	// ErrInvalidRecord возвращается, когда сохранённое событие не удаётся восстановить
	ErrInvalidRecord = errors.New("snapshot: invalid event record")

	// ErrEncode возвращается при ошибке кодирования снимка
	ErrEncode = errors.New("snapshot: encode error")

	// ErrDecode возвращается при ошибке декодирования снимка
	ErrDecode = errors.New("snapshot: decode error")
)
