package persistence

import (
	"context"
	"time"

	"github.com/m04kA/SMC-EventPlanner/internal/domain"
)

const (
	operationSave = "save"
	operationLoad = "load"
)

// Observed оборачивает persister: таймаут на операцию, метрики и логирование
type Observed struct {
	next    EventPersister
	driver  string
	timeout time.Duration
	metrics Metrics
	logger  Logger
}

// NewObserved создает обёртку; timeout <= 0 отключает ограничение времени
func NewObserved(next EventPersister, driver string, timeout time.Duration, metrics Metrics, logger Logger) *Observed {
	return &Observed{
		next:    next,
		driver:  driver,
		timeout: timeout,
		metrics: metrics,
		logger:  logger,
	}
}

// Save сохраняет список событий
func (o *Observed) Save(ctx context.Context, events []*domain.Event) error {
	ctx, cancel := o.withTimeout(ctx)
	defer cancel()

	started := time.Now()
	err := o.next.Save(ctx, events)
	o.metrics.ObservePersist(o.driver, operationSave, started, err)

	if err != nil {
		o.logger.Error("Persist: driver=%s failed to save %d event(s): %v", o.driver, len(events), err)
		return err
	}
	o.logger.Info("Persist: driver=%s saved %d event(s) in %s", o.driver, len(events), time.Since(started))
	return nil
}

// Load загружает список событий
func (o *Observed) Load(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := o.withTimeout(ctx)
	defer cancel()

	started := time.Now()
	events, err := o.next.Load(ctx)
	o.metrics.ObservePersist(o.driver, operationLoad, started, err)

	if err != nil {
		o.logger.Error("Persist: driver=%s failed to load events: %v", o.driver, err)
		return nil, err
	}
	o.logger.Info("Persist: driver=%s loaded %d event(s)", o.driver, len(events))
	return events, nil
}

func (o *Observed) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.timeout)
}
