package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Event событие (концерт, ensayo, ...), забронированное в зале на календарную дату
type Event struct {
	Type      string         // Тип события (ключ reglas_evento)
	Room      string         // Зал (одна из salas каталога)
	Date      time.Time      // Календарная дата без времени (UTC 00:00)
	Resources map[string]int // Ресурс -> количество; отсутствующий ресурс = 0
}

// NewEvent создает событие, проверяя обязательные поля один раз при конструировании
// Дата приводится к календарной, нулевые количества отбрасываются
func NewEvent(eventType, room string, date time.Time, resources map[string]int) (*Event, error) {
	eventType = strings.TrimSpace(eventType)
	room = strings.TrimSpace(room)

	if eventType == "" {
		return nil, fmt.Errorf("%w: type is required", ErrInvalidEvent)
	}
	if room == "" {
		return nil, fmt.Errorf("%w: room is required", ErrInvalidEvent)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidEvent)
	}

	normalized := make(map[string]int, len(resources))
	for name, qty := range resources {
		if qty < 0 {
			return nil, fmt.Errorf("%w: negative quantity %d for %q", ErrInvalidEvent, qty, name)
		}
		if qty == 0 {
			continue
		}
		normalized[name] = qty
	}

	return &Event{
		Type:      eventType,
		Room:      room,
		Date:      DateOnly(date),
		Resources: normalized,
	}, nil
}

// Quantity возвращает количество ресурса (0, если ресурс не указан)
func (e *Event) Quantity(resource string) int {
	return e.Resources[resource]
}

// HasResources возвращает true, если событию назначен хотя бы один ресурс
func (e *Event) HasResources() bool {
	return len(e.Resources) > 0
}

// Matches сравнивает событие по тройке (тип, зал, дата)
func (e *Event) Matches(eventType, room string, date time.Time) bool {
	return e.Type == eventType && e.Room == room && SameDay(e.Date, date)
}

// OnDate возвращает true, если событие проходит в указанную дату
func (e *Event) OnDate(date time.Time) bool {
	return SameDay(e.Date, date)
}

// ResourceNames возвращает имена ресурсов в алфавитном порядке
func (e *Event) ResourceNames() []string {
	names := make([]string, 0, len(e.Resources))
	for name := range e.Resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone возвращает глубокую копию события
func (e *Event) Clone() *Event {
	resources := make(map[string]int, len(e.Resources))
	for name, qty := range e.Resources {
		resources[name] = qty
	}
	return &Event{
		Type:      e.Type,
		Room:      e.Room,
		Date:      e.Date,
		Resources: resources,
	}
}

// String "tipo | sala | 2025-06-01" - формат строки списка событий
func (e *Event) String() string {
	return fmt.Sprintf("%s | %s | %s", e.Type, e.Room, e.Date.Format(DateFormat))
}

// DateOnly отбрасывает время: календарная дата t в UTC 00:00
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay проверяет, что две даты относятся к одному календарному дню
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// AddDays сдвигает календарную дату на n дней
func AddDays(date time.Time, n int) time.Time {
	return DateOnly(date).AddDate(0, 0, n)
}

// ParseDate разбирает дату в формате YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(t), nil
}
