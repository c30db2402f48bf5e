package snapshot

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-EventPlanner/internal/domain"
)

// Форматы даты, которые принимаются при чтении снимка
var dateLayouts = []string{
	domain.DateFormat,
	"2006-01-02T15:04:05", // datetime.isoformat() старых снимков
	time.RFC3339,
}

// Record сохраняемое представление события
type Record struct {
	Type      string         `json:"tipo" cbor:"tipo"`
	Room      string         `json:"sala" cbor:"sala"`
	Date      string         `json:"fecha" cbor:"fecha"`
	Resources map[string]int `json:"recursos" cbor:"recursos"`
}

// FromDomain конвертирует события в записи снимка
func FromDomain(events []*domain.Event) []Record {
	records := make([]Record, 0, len(events))
	for _, event := range events {
		records = append(records, Record{
			Type:      event.Type,
			Room:      event.Room,
			Date:      event.Date.Format(domain.DateFormat),
			Resources: event.Clone().Resources,
		})
	}
	return records
}

// ToDomain восстанавливает события и сортирует их по дате
func ToDomain(records []Record) ([]*domain.Event, error) {
	events := make([]*domain.Event, 0, len(records))
	for i, record := range records {
		date, err := ParseDate(record.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrInvalidRecord, i, err)
		}
		event, err := domain.NewEvent(record.Type, record.Room, date, record.Resources)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrInvalidRecord, i, err)
		}
		events = append(events, event)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return events, nil
}

// ParseDate разбирает дату события в одном из поддерживаемых форматов
func ParseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return domain.DateOnly(t), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
