package models

import (
	"time"

	"github.com/m04kA/SMC-EventPlanner/internal/domain"
)

// Request модели

// RemoveEventRequest запрос на удаление события по тройке (тип, зал, дата)
type RemoveEventRequest struct {
	Type string    `json:"type"`
	Room string    `json:"room"`
	Date time.Time `json:"date"`
}

// NextFreeDateRequest запрос ближайшей свободной даты для зала
type NextFreeDateRequest struct {
	Room      string         `json:"room"`
	Date      *time.Time     `json:"date,omitempty"` // Начало поиска; nil - сегодня
	Resources map[string]int `json:"resources"`
}

// Response модели

// EventResponse событие
type EventResponse struct {
	Type      string         `json:"type"`
	Room      string         `json:"room"`
	Date      string         `json:"date"` // "2025-06-01"
	Resources map[string]int `json:"resources"`
	Title     string         `json:"title"` // "concierto | Sala A | 2025-06-01"
}

// EventListResponse список событий в порядке дат
type EventListResponse struct {
	Events []EventResponse `json:"events"`
	Total  int             `json:"total"`
}

// ClearEventsResponse результат очистки
type ClearEventsResponse struct {
	Removed int `json:"removed"`
}

// NextFreeDateResponse результат поиска свободной даты
type NextFreeDateResponse struct {
	Room        string  `json:"room"`
	From        string  `json:"from"`
	Date        *string `json:"date"` // nil - дата не найдена в пределах горизонта
	Found       bool    `json:"found"`
	HorizonDays int     `json:"horizonDays"`
}

// CatalogResponse каталог ресурсов для построения формы
type CatalogResponse struct {
	Rooms      []string                  `json:"rooms"`
	EventTypes []string                  `json:"eventTypes"`
	Categories map[string]map[string]int `json:"categories"`
}

// FromDomainEvent конвертирует domain.Event в EventResponse
func FromDomainEvent(event *domain.Event) EventResponse {
	resources := make(map[string]int, len(event.Resources))
	for name, qty := range event.Resources {
		resources[name] = qty
	}
	return EventResponse{
		Type:      event.Type,
		Room:      event.Room,
		Date:      event.Date.Format(domain.DateFormat),
		Resources: resources,
		Title:     event.String(),
	}
}

// FromDomainEvents конвертирует список событий
func FromDomainEvents(events []*domain.Event) *EventListResponse {
	out := make([]EventResponse, 0, len(events))
	for _, event := range events {
		out = append(out, FromDomainEvent(event))
	}
	return &EventListResponse{
		Events: out,
		Total:  len(out),
	}
}

// FromDomainCatalog конвертирует каталог
func FromDomainCatalog(catalog *domain.ResourceCatalog) *CatalogResponse {
	categories := make(map[string]map[string]int)
	for _, category := range catalog.Categories() {
		categories[category] = catalog.CategoryResources(category)
	}

	eventTypes := catalog.EventTypes()
	if eventTypes == nil {
		eventTypes = []string{}
	}

	return &CatalogResponse{
		Rooms:      catalog.Rooms(),
		EventTypes: eventTypes,
		Categories: categories,
	}
}
