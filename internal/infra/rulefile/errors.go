package rulefile

import "errors"

var (
	// ErrUnsupportedFormat возвращается для файлов с неизвестным расширением
	ErrUnsupportedFormat = errors.New("rulefile: unsupported file format")

	// ErrInvalidFile возвращается, когда содержимое файла не соответствует ожидаемой структуре
	ErrInvalidFile = errors.New("rulefile: invalid file content")
)
