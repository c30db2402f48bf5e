package add_event

import (
	"context"
	"fmt"
	"sync"

	"github.com/m04kA/SMC-EventPlanner/internal/domain"
)

// UseCase use case проверки и добавления события
type UseCase struct {
	store          EventStore
	catalog        *domain.ResourceCatalog
	rules          *domain.RuleSet
	engine         AvailabilityEngine
	persister      EventPersister
	mu             *sync.RWMutex
	maxAdvanceDays int
	timeProvider   TimeProvider
	metrics        Metrics
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
// mu общий с сервисом событий: проверка и добавление выполняются под одной блокировкой
func NewUseCase(
	store EventStore,
	catalog *domain.ResourceCatalog,
	rules *domain.RuleSet,
	engine AvailabilityEngine,
	persister EventPersister,
	mu *sync.RWMutex,
	maxAdvanceDays int,
	metrics Metrics,
	logger Logger,
) *UseCase {
	if maxAdvanceDays <= 0 {
		maxAdvanceDays = domain.DefaultMaxAdvanceDays
	}
	return &UseCase{
		store:          store,
		catalog:        catalog,
		rules:          rules,
		engine:         engine,
		persister:      persister,
		mu:             mu,
		maxAdvanceDays: maxAdvanceDays,
		timeProvider:   &RealTimeProvider{},
		metrics:        metrics,
		logger:         logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute проверяет событие всеми правилами и при успехе добавляет его и сохраняет список
// При отказе возвращает domain.Violations (errors.Is(err, domain.ErrRejected)), хранилище не меняется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	event, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("AddEvent: validation failed: %v", err)
		uc.metrics.ObserveAdmission(resultError)
		return nil, err
	}

	uc.logger.Info("AddEvent: type=%s, room=%s, date=%s, resources=%d",
		event.Type, event.Room, event.Date.Format(domain.DateFormat), len(event.Resources))

	uc.mu.Lock()
	defer uc.mu.Unlock()

	// 2. Прогоняем все проверки
	p := &pipeline{
		catalog:        uc.catalog,
		rules:          uc.rules,
		engine:         uc.engine,
		today:          domain.DateOnly(uc.timeProvider.Now()),
		maxAdvanceDays: uc.maxAdvanceDays,
	}

	if violations := p.run(event); len(violations) > 0 {
		uc.logger.Warn("AddEvent: event %s rejected with %d violation(s)", event, len(violations))
		uc.metrics.ObserveAdmission(resultRejected)
		for _, v := range violations {
			uc.metrics.ObserveViolation(string(v.Kind))
		}
		return nil, violations
	}

	// 3. Добавляем и сохраняем
	uc.store.Add(event)

	if err := uc.persister.Save(ctx, uc.store.ListAll()); err != nil {
		// откатываем добавление, чтобы память совпадала с сохранённым состоянием
		if _, rmErr := uc.store.Remove(event.Type, event.Room, event.Date); rmErr != nil {
			uc.logger.Error("AddEvent: failed to roll back event %s: %v", event, rmErr)
		}
		uc.logger.Error("AddEvent: failed to persist events: %v", err)
		uc.metrics.ObserveAdmission(resultError)
		return nil, fmt.Errorf("%w: failed to persist events: %v", ErrInternal, err)
	}

	uc.metrics.ObserveAdmission(resultAccepted)
	uc.metrics.SetStoredEvents(uc.store.Len())
	uc.logger.Info("AddEvent: successfully added event %s", event)

	return &Response{
		Type:      event.Type,
		Room:      event.Room,
		Date:      event.Date,
		Resources: event.Clone().Resources,
	}, nil
}
