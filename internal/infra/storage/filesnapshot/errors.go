package filesnapshot

import "errors"

var (
	// ErrWriteFailed возвращается при ошибке записи снимка на диск
	ErrWriteFailed = errors.New("filesnapshot: write failed")

	// ErrReadFailed возвращается при ошибке чтения снимка
	ErrReadFailed = errors.New("filesnapshot: read failed")
)
