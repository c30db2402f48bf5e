package availability

import "time"

// EventReader чтение занятости из хранилища событий
type EventReader interface {
	UsageOnDate(date time.Time) map[string]int
	IsRoomBooked(room string, date time.Time) bool
}

// SearchObserver метрика количества просмотренных дней (может быть nil)
type SearchObserver interface {
	ObserveDateSearch(days int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
