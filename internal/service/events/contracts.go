package events

import (
	"context"
	"time"

	"github.com/m04kA/SMC-EventPlanner/internal/domain"
)

// EventStore интерфейс хранилища принятых событий
type EventStore interface {
	Add(event *domain.Event)
	Replace(events []*domain.Event)
	Remove(eventType, room string, date time.Time) (*domain.Event, error)
	Clear() int
	ListAll() []*domain.Event
	Len() int
}

// EventPersister интерфейс сохранения и загрузки списка событий
type EventPersister interface {
	Save(ctx context.Context, events []*domain.Event) error
	Load(ctx context.Context) ([]*domain.Event, error)
}

// AvailabilityEngine интерфейс поиска свободной даты
type AvailabilityEngine interface {
	SuggestNextFreeDate(room string, start time.Time, requested map[string]int) (time.Time, bool)
	HorizonDays() int
}

// Metrics интерфейс метрик хранилища
type Metrics interface {
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
