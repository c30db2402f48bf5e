package domain

import (
	"fmt"
	"sort"
)

// ResourceCatalog каталог ресурсов: категория -> ресурс -> общее количество в системе
// Категория salas хранит список залов и не участвует в учёте количеств.
// Имя ресурса уникально среди всех категорий.
type ResourceCatalog struct {
	categories map[string]map[string]int
	rooms      []string
	eventTypes []string

	categoryOf map[string]string
	resources  []string // все ресурсы в порядке (категория, имя)
}

// NewResourceCatalog создает каталог и строит индекс ресурс -> категория
func NewResourceCatalog(categories map[string]map[string]int, rooms, eventTypes []string) (*ResourceCatalog, error) {
	c := &ResourceCatalog{
		categories: make(map[string]map[string]int, len(categories)),
		categoryOf: make(map[string]string),
		rooms:      append([]string(nil), rooms...),
		eventTypes: append([]string(nil), eventTypes...),
	}

	for category, items := range categories {
		if category == RoomsCategory {
			for room := range items {
				c.rooms = append(c.rooms, room)
			}
			continue
		}

		copied := make(map[string]int, len(items))
		for name, total := range items {
			if total < 0 {
				return nil, fmt.Errorf("%w: negative total %d for %q", ErrInvalidCatalog, total, name)
			}
			if other, ok := c.categoryOf[name]; ok {
				return nil, fmt.Errorf("%w: resource %q listed in both %q and %q",
					ErrInvalidCatalog, name, other, category)
			}
			c.categoryOf[name] = category
			copied[name] = total
		}
		c.categories[category] = copied
	}

	sort.Strings(c.rooms)
	c.rooms = dedupSorted(c.rooms)

	for _, category := range c.Categories() {
		names := make([]string, 0, len(c.categories[category]))
		for name := range c.categories[category] {
			names = append(names, name)
		}
		sort.Strings(names)
		c.resources = append(c.resources, names...)
	}

	return c, nil
}

// Rooms возвращает список залов
func (c *ResourceCatalog) Rooms() []string {
	return append([]string(nil), c.rooms...)
}

// HasRooms возвращает true, если каталог объявляет залы
func (c *ResourceCatalog) HasRooms() bool {
	return len(c.rooms) > 0
}

// HasRoom проверяет наличие зала в каталоге
func (c *ResourceCatalog) HasRoom(room string) bool {
	i := sort.SearchStrings(c.rooms, room)
	return i < len(c.rooms) && c.rooms[i] == room
}

// EventTypes возвращает список типов событий, предлагаемых каталогом
func (c *ResourceCatalog) EventTypes() []string {
	return append([]string(nil), c.eventTypes...)
}

// Categories возвращает категории ресурсов (без salas) в алфавитном порядке
func (c *ResourceCatalog) Categories() []string {
	names := make([]string, 0, len(c.categories))
	for name := range c.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CategoryResources возвращает копию ресурсов категории
func (c *ResourceCatalog) CategoryResources(category string) map[string]int {
	items := c.categories[category]
	copied := make(map[string]int, len(items))
	for name, total := range items {
		copied[name] = total
	}
	return copied
}

// Resources возвращает все учитываемые ресурсы в детерминированном порядке
func (c *ResourceCatalog) Resources() []string {
	return append([]string(nil), c.resources...)
}

// Total возвращает общее количество ресурса
func (c *ResourceCatalog) Total(resource string) (int, bool) {
	category, ok := c.categoryOf[resource]
	if !ok {
		return 0, false
	}
	return c.categories[category][resource], true
}

// CategoryOf возвращает категорию ресурса
func (c *ResourceCatalog) CategoryOf(resource string) (string, bool) {
	category, ok := c.categoryOf[resource]
	return category, ok
}

// InCategory проверяет принадлежность ресурса категории
func (c *ResourceCatalog) InCategory(resource, category string) bool {
	return c.categoryOf[resource] == category
}

func dedupSorted(items []string) []string {
	if len(items) < 2 {
		return items
	}
	out := items[:1]
	for _, item := range items[1:] {
		if item != out[len(out)-1] {
			out = append(out, item)
		}
	}
	return out
}
