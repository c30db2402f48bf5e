package domain

// Категории каталога с особой семантикой
const (
	RoomsCategory       = "salas"        // список залов, не участвует в учёте ресурсов
	InstrumentsCategory = "instrumentos" // используется requiere_instrumentos и запретом инструментов в зале
)

// Значения по умолчанию
const (
	DefaultMaxAdvanceDays    = 365 // бронирование не более чем на год вперёд
	DefaultSearchHorizonDays = 365 // поиск свободной даты ограничен годом
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
