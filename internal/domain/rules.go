package domain

// RuleSet набор правил планировщика (restricciones)
// Каждое семейство правил хранится отдельной структурой
type RuleSet struct {
	EventRules     map[string]EventTypeRule  // reglas_evento: тип события -> минимумы
	CoRequisites   CoRequisites              // corequisitos
	Exclusions     Exclusions                // exclusiones
	MandatoryStaff map[string]map[string]int // personal_obligatorio: зал -> роль -> минимум
}

// EventTypeRule минимальные количества ресурсов для типа события
type EventTypeRule struct {
	Minimums            map[string]int // ресурс -> минимальное количество
	RequiresInstruments bool           // requiere_instrumentos
}

// CoRequisites правила совместного использования ресурсов
type CoRequisites struct {
	// ByResource ресурс -> ресурсы, которые должны присутствовать в не меньшем количестве
	ByResource map[string][]string
	// ByCategory категория -> требуемые ресурсы на суммарное количество категории
	ByCategory map[string]CategoryCoRequisite
}

// CategoryCoRequisite требования категории
type CategoryCoRequisite struct {
	Requires []string // requiere
	Except   []string // excepto: ресурсы категории, не создающие требование
}

// IsExempt проверяет, что ресурс освобождён от правила категории
func (c CategoryCoRequisite) IsExempt(resource string) bool {
	return contains(c.Except, resource)
}

// Exclusions запреты
type Exclusions struct {
	ByRoom          map[string]RoomExclusion      // por_sala
	ByEventType     map[string]EventTypeExclusion // por_evento
	ForbiddenEvents map[string][]string           // eventos_prohibidos: зал -> типы событий
}

// RoomExclusion ресурсы, запрещённые в зале
type RoomExclusion struct {
	Instruments bool     // запрещены все инструменты
	Equipment   []string // equipos
	Personnel   []string // personal
}

// IsEmpty возвращает true, если запретов для зала нет
func (r RoomExclusion) IsEmpty() bool {
	return !r.Instruments && len(r.Equipment) == 0 && len(r.Personnel) == 0
}

// EventTypeExclusion ресурсы, запрещённые для типа события
type EventTypeExclusion struct {
	Forbidden []string // prohibido
}

// NewRuleSet создает пустой набор правил с инициализированными картами
func NewRuleSet() *RuleSet {
	return &RuleSet{
		EventRules: make(map[string]EventTypeRule),
		CoRequisites: CoRequisites{
			ByResource: make(map[string][]string),
			ByCategory: make(map[string]CategoryCoRequisite),
		},
		Exclusions: Exclusions{
			ByRoom:          make(map[string]RoomExclusion),
			ByEventType:     make(map[string]EventTypeExclusion),
			ForbiddenEvents: make(map[string][]string),
		},
		MandatoryStaff: make(map[string]map[string]int),
	}
}

// EventRule возвращает правила типа события
func (r *RuleSet) EventRule(eventType string) (EventTypeRule, bool) {
	rule, ok := r.EventRules[eventType]
	return rule, ok
}

// IsEventForbiddenInRoom проверяет пару (зал, тип события)
func (r *RuleSet) IsEventForbiddenInRoom(room, eventType string) bool {
	return contains(r.Exclusions.ForbiddenEvents[room], eventType)
}

func contains(items []string, item string) bool {
	for _, it := range items {
		if it == item {
			return true
		}
	}
	return false
}
