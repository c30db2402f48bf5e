package eventstore

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-EventPlanner/internal/domain"
)

// Store упорядоченное по дате хранилище принятых событий
// Единственный владелец событий: наружу отдаются только копии.
// Внутренней синхронизации нет - вызывающий код сериализует изменения.
type Store struct {
	events []*domain.Event
}

// New создает пустое хранилище
func New() *Store {
	return &Store{events: make([]*domain.Event, 0)}
}

// Add добавляет уже проверенное событие и пересортировывает список по дате
func (s *Store) Add(event *domain.Event) {
	s.events = append(s.events, event.Clone())
	s.sort()
}

// Replace заменяет содержимое хранилища (загрузка при старте)
func (s *Store) Replace(events []*domain.Event) {
	s.events = make([]*domain.Event, 0, len(events))
	for _, event := range events {
		s.events = append(s.events, event.Clone())
	}
	s.sort()
}

// Remove удаляет первое событие, совпадающее по тройке (тип, зал, дата)
func (s *Store) Remove(eventType, room string, date time.Time) (*domain.Event, error) {
	for i, event := range s.events {
		if !event.Matches(eventType, room, date) {
			continue
		}
		s.events = append(s.events[:i], s.events[i+1:]...)
		return event, nil
	}
	return nil, ErrEventNotFound
}

// Clear удаляет все события и возвращает их количество
func (s *Store) Clear() int {
	n := len(s.events)
	s.events = make([]*domain.Event, 0)
	return n
}

// ListAll возвращает копии всех событий, отсортированные по дате
func (s *Store) ListAll() []*domain.Event {
	out := make([]*domain.Event, len(s.events))
	for i, event := range s.events {
		out[i] = event.Clone()
	}
	return out
}

// Len количество событий
func (s *Store) Len() int {
	return len(s.events)
}

// UsageOnDate суммирует ресурсы всех событий на дату
func (s *Store) UsageOnDate(date time.Time) map[string]int {
	usage := make(map[string]int)
	for _, event := range s.events {
		if !event.OnDate(date) {
			continue
		}
		for name, qty := range event.Resources {
			usage[name] += qty
		}
	}
	return usage
}

// IsRoomBooked проверяет, занят ли зал в указанную дату
func (s *Store) IsRoomBooked(room string, date time.Time) bool {
	for _, event := range s.events {
		if event.Room == room && event.OnDate(date) {
			return true
		}
	}
	return false
}

// EventsOnDate возвращает копии событий на дату
func (s *Store) EventsOnDate(date time.Time) []*domain.Event {
	out := make([]*domain.Event, 0)
	for _, event := range s.events {
		if event.OnDate(date) {
			out = append(out, event.Clone())
		}
	}
	return out
}

// sort стабильная сортировка по дате: события одного дня сохраняют порядок добавления
func (s *Store) sort() {
	sort.SliceStable(s.events, func(i, j int) bool {
		return s.events[i].Date.Before(s.events[j].Date)
	})
}
