package rulefile

import (
	"fmt"

	"github.com/m04kA/SMC-EventPlanner/internal/domain"
)

// requiresInstrumentsKey логическое правило в reglas_evento
const requiresInstrumentsKey = "requiere_instrumentos"

// rulesFile структура файла restricciones
type rulesFile struct {
	EventRules     map[string]map[string]interface{} `json:"reglas_evento" yaml:"reglas_evento"`
	CoRequisites   coRequisitesFile                  `json:"corequisitos" yaml:"corequisitos"`
	Exclusions     exclusionsFile                    `json:"exclusiones" yaml:"exclusiones"`
	MandatoryStaff map[string]map[string]int         `json:"personal_obligatorio" yaml:"personal_obligatorio"`
}

type coRequisitesFile struct {
	Resources  map[string][]string         `json:"recursos" yaml:"recursos"`
	Categories map[string]categoryRuleFile `json:"categorias" yaml:"categorias"`
}

type categoryRuleFile struct {
	Requires []string `json:"requiere" yaml:"requiere"`
	Except   []string `json:"excepto" yaml:"excepto"`
}

type exclusionsFile struct {
	ByRoom          map[string]roomExclusionFile  `json:"por_sala" yaml:"por_sala"`
	ByEventType     map[string]eventExclusionFile `json:"por_evento" yaml:"por_evento"`
	ForbiddenEvents map[string][]string           `json:"eventos_prohibidos" yaml:"eventos_prohibidos"`
}

type roomExclusionFile struct {
	Instruments bool     `json:"instrumentos" yaml:"instrumentos"`
	Equipment   []string `json:"equipos" yaml:"equipos"`
	Personnel   []string `json:"personal" yaml:"personal"`
}

type eventExclusionFile struct {
	Forbidden []string `json:"prohibido" yaml:"prohibido"`
}

// LoadRules загружает набор правил (restricciones.json / .yaml)
func LoadRules(path string) (*domain.RuleSet, error) {
	var file rulesFile
	if err := decodeFile(path, &file); err != nil {
		return nil, err
	}
	return file.toDomain(), nil
}

// ParseRules разбирает набор правил из байтов; ext определяет формат (".json", ".yaml")
func ParseRules(ext string, data []byte) (*domain.RuleSet, error) {
	var file rulesFile
	if err := decode(ext, data, &file); err != nil {
		return nil, err
	}
	return file.toDomain(), nil
}

// ParseCatalog разбирает каталог ресурсов из байтов; ext определяет формат
func ParseCatalog(ext string, data []byte) (*domain.ResourceCatalog, error) {
	var raw map[string]interface{}
	if err := decode(ext, data, &raw); err != nil {
		return nil, err
	}
	catalog, err := parseCatalog(raw)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return catalog, nil
}

func (f *rulesFile) toDomain() *domain.RuleSet {
	rules := domain.NewRuleSet()

	for eventType, raw := range f.EventRules {
		rule := domain.EventTypeRule{Minimums: make(map[string]int)}
		for key, value := range raw {
			if key == requiresInstrumentsKey {
				rule.RequiresInstruments, _ = value.(bool)
				continue
			}
			// учитываются только целые минимумы
			if minimum, ok := asInt(value); ok {
				rule.Minimums[key] = minimum
			}
		}
		rules.EventRules[eventType] = rule
	}

	for resource, required := range f.CoRequisites.Resources {
		rules.CoRequisites.ByResource[resource] = required
	}
	for category, rule := range f.CoRequisites.Categories {
		rules.CoRequisites.ByCategory[category] = domain.CategoryCoRequisite{
			Requires: rule.Requires,
			Except:   rule.Except,
		}
	}

	for room, rule := range f.Exclusions.ByRoom {
		rules.Exclusions.ByRoom[room] = domain.RoomExclusion{
			Instruments: rule.Instruments,
			Equipment:   rule.Equipment,
			Personnel:   rule.Personnel,
		}
	}
	for eventType, rule := range f.Exclusions.ByEventType {
		rules.Exclusions.ByEventType[eventType] = domain.EventTypeExclusion{Forbidden: rule.Forbidden}
	}
	for room, eventTypes := range f.Exclusions.ForbiddenEvents {
		rules.Exclusions.ForbiddenEvents[room] = eventTypes
	}

	for room, staff := range f.MandatoryStaff {
		roles := make(map[string]int, len(staff))
		for role, minimum := range staff {
			roles[role] = minimum
		}
		rules.MandatoryStaff[room] = roles
	}

	return rules
}
