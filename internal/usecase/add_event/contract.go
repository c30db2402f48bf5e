package add_event

import (
	"context"
	"time"

	"github.com/m04kA/SMC-EventPlanner/internal/domain"
	"github.com/m04kA/SMC-EventPlanner/internal/service/availability"
)

// EventStore интерфейс хранилища принятых событий
type EventStore interface {
	Add(event *domain.Event)
	Remove(eventType, room string, date time.Time) (*domain.Event, error)
	ListAll() []*domain.Event
	Len() int
}

// AvailabilityEngine интерфейс расчёта занятости по дням
type AvailabilityEngine interface {
	IsRoomBooked(room string, date time.Time) bool
	Shortfalls(date time.Time, requested map[string]int) []availability.Shortfall
	SuggestNextFreeDate(room string, start time.Time, requested map[string]int) (time.Time, bool)
}

// EventPersister интерфейс сохранения списка событий
type EventPersister interface {
	Save(ctx context.Context, events []*domain.Event) error
}

// Metrics интерфейс метрик допуска событий
type Metrics interface {
	ObserveAdmission(result string)
	ObserveViolation(kind string)
	SetStoredEvents(n int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
