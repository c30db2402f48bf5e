package rulefile

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-EventPlanner/internal/domain"
)

// eventTypesKey необязательный список типов событий в каталоге
const eventTypesKey = "eventos"

// LoadCatalog загружает каталог ресурсов (recursos.json)
// Категория salas задаёт залы (значения игнорируются), eventos - список типов событий,
// остальные объекты - категории ресурс -> общее количество.
func LoadCatalog(path string) (*domain.ResourceCatalog, error) {
	var raw map[string]interface{}
	if err := decodeFile(path, &raw); err != nil {
		return nil, err
	}

	catalog, err := parseCatalog(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return catalog, nil
}

func parseCatalog(raw map[string]interface{}) (*domain.ResourceCatalog, error) {
	categories := make(map[string]map[string]int)
	var rooms, eventTypes []string

	for key, value := range raw {
		switch {
		case key == eventTypesKey:
			eventTypes = stringList(value)
		case key == domain.RoomsCategory:
			items, ok := value.(map[string]interface{})
			if !ok {
				rooms = append(rooms, stringList(value)...)
				continue
			}
			for room := range items {
				rooms = append(rooms, room)
			}
		default:
			items, ok := value.(map[string]interface{})
			if !ok {
				continue
			}
			category := make(map[string]int, len(items))
			for name, v := range items {
				total, ok := asInt(v)
				if !ok {
					return nil, fmt.Errorf("%w: %s.%s must be an integer", ErrInvalidFile, key, name)
				}
				category[name] = total
			}
			categories[key] = category
		}
	}

	return domain.NewResourceCatalog(categories, rooms, eventTypes)
}

// stringList принимает список строк или объект (берутся ключи в алфавитном порядке)
func stringList(value interface{}) []string {
	switch v := value.(type) {
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case map[string]interface{}:
		out := make([]string, 0, len(v))
		for key := range v {
			out = append(out, key)
		}
		sort.Strings(out)
		return out
	default:
		return nil
	}
}
