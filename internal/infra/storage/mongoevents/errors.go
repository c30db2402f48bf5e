package mongoevents

import "errors"

var (
	// ErrConnect возвращается, когда не удалось подключиться к MongoDB
	ErrConnect = errors.New("mongoevents: connect failed")

	// ErrQuery возвращается при ошибке операции с коллекцией
	ErrQuery = errors.New("mongoevents: query failed")
)
