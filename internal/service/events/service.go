package events

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/m04kA/SMC-EventPlanner/internal/domain"
	"github.com/m04kA/SMC-EventPlanner/internal/infra/storage/eventstore"
	"github.com/m04kA/SMC-EventPlanner/internal/service/events/models"
)

// Service сервис для работы с принятыми событиями
type Service struct {
	store        EventStore
	persister    EventPersister
	engine       AvailabilityEngine
	catalog      *domain.ResourceCatalog
	mu           *sync.RWMutex
	timeProvider TimeProvider
	metrics      Metrics
	logger       Logger
}

// NewService создает новый экземпляр сервиса событий
// mu общий с use case добавления события
func NewService(
	store EventStore,
	persister EventPersister,
	engine AvailabilityEngine,
	catalog *domain.ResourceCatalog,
	mu *sync.RWMutex,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		store:        store,
		persister:    persister,
		engine:       engine,
		catalog:      catalog,
		mu:           mu,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Restore загружает сохранённые события в хранилище (при старте сервиса)
func (s *Service) Restore(ctx context.Context) (int, error) {
	events, err := s.persister.Load(ctx)
	if err != nil {
		s.logger.Error("Restore: failed to load events: %v", err)
		return 0, fmt.Errorf("%w: Restore - load error: %v", ErrInternal, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.Replace(events)
	s.metrics.SetStoredEvents(s.store.Len())

	s.logger.Info("Restore: loaded %d event(s)", s.store.Len())
	return s.store.Len(), nil
}

// ListAll возвращает все события в порядке дат
func (s *Service) ListAll(ctx context.Context) (*models.EventListResponse, error) {
	s.mu.RLock()
	events := s.store.ListAll()
	s.mu.RUnlock()

	s.logger.Info("ListAll: returning %d event(s)", len(events))
	return models.FromDomainEvents(events), nil
}

// Remove удаляет первое событие, совпадающее по тройке (тип, зал, дата), и сохраняет список
func (s *Service) Remove(ctx context.Context, req *models.RemoveEventRequest) error {
	if req == nil || req.Type == "" || req.Room == "" || req.Date.IsZero() {
		return fmt.Errorf("%w: type, room and date are required", ErrInvalidInput)
	}

	date := domain.DateOnly(req.Date)
	s.logger.Info("Remove: type=%s, room=%s, date=%s", req.Type, req.Room, date.Format(domain.DateFormat))

	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.store.Remove(req.Type, req.Room, date)
	if err != nil {
		if errors.Is(err, eventstore.ErrEventNotFound) {
			s.logger.Warn("Remove: event %s | %s | %s not found", req.Type, req.Room, date.Format(domain.DateFormat))
			return ErrEventNotFound
		}
		s.logger.Error("Remove: store error: %v", err)
		return fmt.Errorf("%w: Remove - store error: %v", ErrInternal, err)
	}

	if err := s.persister.Save(ctx, s.store.ListAll()); err != nil {
		s.store.Add(removed)
		s.logger.Error("Remove: failed to persist events: %v", err)
		return fmt.Errorf("%w: Remove - persist error: %v", ErrInternal, err)
	}

	s.metrics.SetStoredEvents(s.store.Len())
	s.logger.Info("Remove: successfully removed event %s", removed)
	return nil
}

// Clear удаляет все события и сохраняет пустой список
func (s *Service) Clear(ctx context.Context) (*models.ClearEventsResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.store.ListAll()
	removed := s.store.Clear()

	if err := s.persister.Save(ctx, s.store.ListAll()); err != nil {
		s.store.Replace(previous)
		s.logger.Error("Clear: failed to persist events: %v", err)
		return nil, fmt.Errorf("%w: Clear - persist error: %v", ErrInternal, err)
	}

	s.metrics.SetStoredEvents(0)
	s.logger.Info("Clear: removed %d event(s)", removed)
	return &models.ClearEventsResponse{Removed: removed}, nil
}

// NextFreeDate ищет ближайшую дату, когда зал свободен и запрошенных ресурсов хватает
// Поиск начинается с max(req.Date, сегодня)
func (s *Service) NextFreeDate(ctx context.Context, req *models.NextFreeDateRequest) (*models.NextFreeDateResponse, error) {
	if req == nil || req.Room == "" {
		return nil, fmt.Errorf("%w: room is required", ErrInvalidInput)
	}
	for name, qty := range req.Resources {
		if qty < 0 {
			return nil, fmt.Errorf("%w: negative quantity %d for %q", ErrInvalidInput, qty, name)
		}
	}
	if s.catalog.HasRooms() && !s.catalog.HasRoom(req.Room) {
		s.logger.Warn("NextFreeDate: room %s not found in catalog", req.Room)
		return nil, ErrRoomNotFound
	}

	start := domain.DateOnly(s.timeProvider.Now())
	if req.Date != nil && domain.DateOnly(*req.Date).After(start) {
		start = domain.DateOnly(*req.Date)
	}

	s.mu.RLock()
	date, found := s.engine.SuggestNextFreeDate(req.Room, start, req.Resources)
	s.mu.RUnlock()

	resp := &models.NextFreeDateResponse{
		Room:        req.Room,
		From:        start.Format(domain.DateFormat),
		Found:       found,
		HorizonDays: s.engine.HorizonDays(),
	}
	if found {
		formatted := date.Format(domain.DateFormat)
		resp.Date = &formatted
	}

	s.logger.Info("NextFreeDate: room=%s, from=%s, found=%t", req.Room, resp.From, found)
	return resp, nil
}

// Catalog возвращает каталог ресурсов
func (s *Service) Catalog(ctx context.Context) *models.CatalogResponse {
	return models.FromDomainCatalog(s.catalog)
}
