package persistence

import (
	"context"
	"time"

	"github.com/m04kA/SMC-EventPlanner/internal/domain"
)

// EventPersister хранилище списка событий (file, postgres, mongo, s3)
type EventPersister interface {
	Save(ctx context.Context, events []*domain.Event) error
	Load(ctx context.Context) ([]*domain.Event, error)
}

// Metrics интерфейс метрик сохранения
type Metrics interface {
	ObservePersist(driver, operation string, started time.Time, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
