package availability

import (
	"time"

	"github.com/m04kA/SMC-EventPlanner/internal/domain"
)

// Shortfall нехватка ресурса в конкретный день
type Shortfall struct {
	Resource  string
	Requested int
	Remaining int // total - used, может быть отрицательным при перебронировании
}

// Engine вычисляет занятость ресурсов по дням и ищет ближайшую свободную дату
// Не изменяет хранилище событий.
type Engine struct {
	store       EventReader
	catalog     *domain.ResourceCatalog
	horizonDays int
	observer    SearchObserver
	logger      Logger
}

// NewEngine создает движок доступности
// horizonDays <= 0 заменяется на domain.DefaultSearchHorizonDays
func NewEngine(
	store EventReader,
	catalog *domain.ResourceCatalog,
	horizonDays int,
	observer SearchObserver,
	logger Logger,
) *Engine {
	if horizonDays <= 0 {
		horizonDays = domain.DefaultSearchHorizonDays
	}
	return &Engine{
		store:       store,
		catalog:     catalog,
		horizonDays: horizonDays,
		observer:    observer,
		logger:      logger,
	}
}

// Shortfalls возвращает ресурсы каталога, которых не хватает на дату с учётом уже принятых событий
// Порядок соответствует порядку ресурсов каталога (категория, имя)
func (e *Engine) Shortfalls(date time.Time, requested map[string]int) []Shortfall {
	used := e.store.UsageOnDate(date)
	return shortfalls(e.catalog, used, requested)
}

// IsRoomBooked проверяет занятость зала на дату
func (e *Engine) IsRoomBooked(room string, date time.Time) bool {
	return e.store.IsRoomBooked(room, date)
}

// Fits проверяет, что в дату зал свободен и ресурсов хватает
func (e *Engine) Fits(room string, date time.Time, requested map[string]int) bool {
	if e.store.IsRoomBooked(room, date) {
		return false
	}
	return len(e.Shortfalls(date, requested)) == 0
}

// SuggestNextFreeDate ищет первый день начиная со start (включительно), когда зал свободен
// и всех ресурсов каталога хватает на запрос. Просматривается не более horizonDays дней.
// Второе значение false - подходящая дата не найдена.
func (e *Engine) SuggestNextFreeDate(room string, start time.Time, requested map[string]int) (time.Time, bool) {
	day := domain.DateOnly(start)

	for scanned := 1; scanned <= e.horizonDays; scanned++ {
		if e.Fits(room, day, requested) {
			e.observe(scanned)
			return day, true
		}
		day = domain.AddDays(day, 1)
	}

	e.observe(e.horizonDays)
	if e.logger != nil {
		e.logger.Warn("SuggestNextFreeDate: no free date for room=%s within %d days from %s",
			room, e.horizonDays, domain.DateOnly(start).Format(domain.DateFormat))
	}
	return time.Time{}, false
}

// HorizonDays горизонт поиска в днях
func (e *Engine) HorizonDays() int {
	return e.horizonDays
}

func (e *Engine) observe(days int) {
	if e.observer != nil {
		e.observer.ObserveDateSearch(days)
	}
}

// shortfalls сравнивает запрос с остатком (total - used) по каждому ресурсу каталога
func shortfalls(catalog *domain.ResourceCatalog, used, requested map[string]int) []Shortfall {
	var out []Shortfall
	for _, resource := range catalog.Resources() {
		total, _ := catalog.Total(resource)
		remaining := total - used[resource]
		if requested[resource] > remaining {
			out = append(out, Shortfall{
				Resource:  resource,
				Requested: requested[resource],
				Remaining: remaining,
			})
		}
	}
	return out
}
