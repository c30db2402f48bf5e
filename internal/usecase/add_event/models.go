package add_event

import "time"

// Request модель запроса на добавление события
type Request struct {
	Type      string         // Тип события (concierto, ensayo, ...)
	Room      string         // Зал
	Date      time.Time      // Дата события (время отбрасывается)
	Resources map[string]int // Ресурс -> количество
}

// Response модель принятого события
type Response struct {
	Type      string
	Room      string
	Date      time.Time
	Resources map[string]int
}
