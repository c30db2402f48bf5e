package add_event

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/m04kA/SMC-EventPlanner/internal/domain"
)

// noSuggestion подставляется в сообщение, если свободная дата в пределах горизонта не найдена
const noSuggestion = "no disponible"

// validateRequest валидирует входные данные и строит событие
func validateRequest(req *Request) (*domain.Event, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	event, err := domain.NewEvent(req.Type, req.Room, req.Date, req.Resources)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return event, nil
}

// pipeline последовательность независимых проверок события
// Все проверки выполняются, нарушения собираются в порядке проверок.
type pipeline struct {
	catalog        *domain.ResourceCatalog
	rules          *domain.RuleSet
	engine         AvailabilityEngine
	today          time.Time
	maxAdvanceDays int

	// предложение даты вычисляется один раз и используется обеими проверками вместимости
	suggestion *time.Time
	suggested  bool
}

func (p *pipeline) run(event *domain.Event) domain.Violations {
	checks := []func(*domain.Event) domain.Violations{
		p.checkDate,
		p.checkRoom,
		p.checkGlobalSufficiency,
		p.checkEventRules,
		p.checkResourceCoRequisites,
		p.checkCategoryCoRequisites,
		p.checkRoomExclusions,
		p.checkEventTypeExclusions,
		p.checkForbiddenEvent,
		p.checkMandatoryStaff,
		p.checkRoomAvailability,
		p.checkSameDayResources,
	}

	var violations domain.Violations
	for _, check := range checks {
		violations = append(violations, check(event)...)
	}
	return violations
}

// checkDate дата не раньше сегодняшней и не дальше maxAdvanceDays
func (p *pipeline) checkDate(event *domain.Event) domain.Violations {
	var out domain.Violations

	if event.Date.Before(p.today) {
		out = append(out, violation(domain.KindInvalidDate,
			"No se pueden crear eventos en fechas anteriores a hoy"))
	}

	maxDate := domain.AddDays(p.today, p.maxAdvanceDays)
	if event.Date.After(maxDate) {
		out = append(out, violation(domain.KindInvalidDate,
			"No se pueden crear eventos con más de un año de anticipación"))
	}

	return out
}

// checkRoom зал должен быть в каталоге, если каталог объявляет залы
func (p *pipeline) checkRoom(event *domain.Event) domain.Violations {
	if !p.catalog.HasRooms() || p.catalog.HasRoom(event.Room) {
		return nil
	}
	return domain.Violations{violation(domain.KindUnknownRoom,
		fmt.Sprintf("La sala '%s' no existe", event.Room))}
}

// checkGlobalSufficiency запрошено не больше, чем есть в системе
func (p *pipeline) checkGlobalSufficiency(event *domain.Event) domain.Violations {
	if !event.HasResources() {
		return domain.Violations{violation(domain.KindEmptyResources,
			"El evento debe tener recursos especificados")}
	}

	var out domain.Violations
	for _, resource := range p.catalog.Resources() {
		total, _ := p.catalog.Total(resource)
		requested := event.Quantity(resource)
		if requested > total {
			out = append(out, violation(domain.KindInsufficientGlobalResource,
				fmt.Sprintf("Se disponen de %d '%s', pero se solicitaron %d.", total, resource, requested)))
		}
	}
	return out
}

// checkEventRules минимумы ресурсов для типа события и requiere_instrumentos
func (p *pipeline) checkEventRules(event *domain.Event) domain.Violations {
	rule, ok := p.rules.EventRule(event.Type)
	if !ok {
		return domain.Violations{violation(domain.KindUnknownEventType,
			fmt.Sprintf("No existe el evento '%s'", event.Type))}
	}

	var out domain.Violations
	for _, resource := range sortedKeys(rule.Minimums) {
		minimum := rule.Minimums[resource]
		used := minimumLookup(event, resource)
		if used < minimum {
			out = append(out, violation(domain.KindMissingRequiredResource,
				fmt.Sprintf("El evento '%s' requiere al menos %d %s (se indicaron %d)",
					event.Type, minimum, resource, used)))
		}
	}

	if rule.RequiresInstruments {
		instruments := 0
		for name, qty := range event.Resources {
			if p.catalog.InCategory(name, domain.InstrumentsCategory) {
				instruments += qty
			}
		}
		if instruments == 0 {
			out = append(out, violation(domain.KindMissingRequiredResource,
				fmt.Sprintf("El evento '%s' debe incluir al menos un instrumento.", event.Type)))
		}
	}

	return out
}

// checkResourceCoRequisites при наличии ресурса каждый требуемый ресурс должен быть в не меньшем количестве
func (p *pipeline) checkResourceCoRequisites(event *domain.Event) domain.Violations {
	var out domain.Violations
	byResource := p.rules.CoRequisites.ByResource

	for _, resource := range sortedKeys(byResource) {
		qty := event.Quantity(resource)
		if qty == 0 {
			continue
		}
		for _, required := range byResource[resource] {
			have := event.Quantity(required)
			if have < qty {
				out = append(out, violation(domain.KindMissingCoRequisite,
					fmt.Sprintf("Si hay %d '%s' debe haber %d '%s' (se indicaron %d).",
						qty, resource, qty, required, have)))
			}
		}
	}
	return out
}

// checkCategoryCoRequisites суммирует требования всех ресурсов категории (кроме исключений)
func (p *pipeline) checkCategoryCoRequisites(event *domain.Event) domain.Violations {
	byCategory := p.rules.CoRequisites.ByCategory
	totals := make(map[string]int)

	for _, resource := range event.ResourceNames() {
		category, ok := p.catalog.CategoryOf(resource)
		if !ok {
			continue
		}
		rule, ok := byCategory[category]
		if !ok || rule.IsExempt(resource) {
			continue
		}
		for _, required := range rule.Requires {
			totals[required] += event.Quantity(resource)
		}
	}

	var out domain.Violations
	for _, required := range sortedKeys(totals) {
		have := event.Quantity(required)
		if have < totals[required] {
			out = append(out, violation(domain.KindMissingCoRequisite,
				fmt.Sprintf("Se requieren %d '%s', pero solo se indicaron %d.", totals[required], required, have)))
		}
	}
	return out
}

// checkRoomExclusions запрещённые в зале инструменты, оборудование и персонал
func (p *pipeline) checkRoomExclusions(event *domain.Event) domain.Violations {
	rule, ok := p.rules.Exclusions.ByRoom[event.Room]
	if !ok || rule.IsEmpty() {
		return nil
	}

	var out domain.Violations
	if rule.Instruments {
		for _, resource := range event.ResourceNames() {
			if p.catalog.InCategory(resource, domain.InstrumentsCategory) {
				out = append(out, violation(domain.KindForbiddenResource,
					fmt.Sprintf("El instrumento '%s' no puede usarse en la sala %s", resource, event.Room)))
			}
		}
	}
	for _, equipment := range rule.Equipment {
		if event.Quantity(equipment) > 0 {
			out = append(out, violation(domain.KindForbiddenResource,
				fmt.Sprintf("El equipo '%s' no puede usarse en la sala %s", equipment, event.Room)))
		}
	}
	for _, role := range rule.Personnel {
		if event.Quantity(role) > 0 {
			out = append(out, violation(domain.KindForbiddenResource,
				fmt.Sprintf("El personal '%s' no puede asignarse en la sala %s", role, event.Room)))
		}
	}
	return out
}

// checkEventTypeExclusions ресурсы, запрещённые для типа события
func (p *pipeline) checkEventTypeExclusions(event *domain.Event) domain.Violations {
	rule, ok := p.rules.Exclusions.ByEventType[event.Type]
	if !ok {
		return nil
	}

	var out domain.Violations
	for _, resource := range rule.Forbidden {
		if event.Quantity(resource) > 0 {
			out = append(out, violation(domain.KindForbiddenResource,
				fmt.Sprintf("El evento '%s' no puede incluir '%s'", event.Type, resource)))
		}
	}
	return out
}

// checkForbiddenEvent тип события запрещён в зале
func (p *pipeline) checkForbiddenEvent(event *domain.Event) domain.Violations {
	if !p.rules.IsEventForbiddenInRoom(event.Room, event.Type) {
		return nil
	}
	return domain.Violations{violation(domain.KindForbiddenEventInRoom,
		fmt.Sprintf("El evento '%s' no se puede realizar en la sala '%s'.", event.Type, event.Room))}
}

// checkMandatoryStaff обязательный персонал зала
func (p *pipeline) checkMandatoryStaff(event *domain.Event) domain.Violations {
	staff, ok := p.rules.MandatoryStaff[event.Room]
	if !ok {
		return nil
	}

	var out domain.Violations
	for _, role := range sortedKeys(staff) {
		used := event.Quantity(role)
		if used < staff[role] {
			out = append(out, violation(domain.KindMissingMandatoryStaff,
				fmt.Sprintf("En la sala %s se requiere al menos %d '%s' (se indicaron %d)",
					event.Room, staff[role], role, used)))
		}
	}
	return out
}

// checkRoomAvailability в зале не больше одного события в день
func (p *pipeline) checkRoomAvailability(event *domain.Event) domain.Violations {
	if !p.engine.IsRoomBooked(event.Room, event.Date) {
		return nil
	}

	suggestion := p.suggest(event)
	v := violation(domain.KindRoomAlreadyBooked,
		fmt.Sprintf("Ya existe un evento en la sala %s para el día %s. Sugerencia: próxima fecha con recursos libres %s",
			event.Room, event.Date.Format(domain.DateFormat), formatSuggestion(suggestion)))
	v.SuggestedDate = suggestion
	return domain.Violations{v}
}

// checkSameDayResources ресурсов хватает с учётом событий того же дня
func (p *pipeline) checkSameDayResources(event *domain.Event) domain.Violations {
	shortfalls := p.engine.Shortfalls(event.Date, event.Resources)
	if len(shortfalls) == 0 {
		return nil
	}

	conflicts := make([]string, 0, len(shortfalls))
	for _, s := range shortfalls {
		conflicts = append(conflicts, fmt.Sprintf("%s:%d", s.Resource, s.Remaining))
	}

	suggestion := p.suggest(event)
	v := violation(domain.KindInsufficientSameDayResource,
		fmt.Sprintf("No hay suficientes recursos disponibles ese día: %s. Sugerencia: próxima fecha libre %s.",
			strings.Join(conflicts, ", "), formatSuggestion(suggestion)))
	v.SuggestedDate = suggestion
	return domain.Violations{v}
}

// suggest ищет ближайшую свободную дату начиная с max(дата события, сегодня)
func (p *pipeline) suggest(event *domain.Event) *time.Time {
	if p.suggested {
		return p.suggestion
	}
	p.suggested = true

	start := event.Date
	if start.Before(p.today) {
		start = p.today
	}

	date, ok := p.engine.SuggestNextFreeDate(event.Room, start, event.Resources)
	if ok {
		p.suggestion = &date
	}
	return p.suggestion
}

func violation(kind domain.ViolationKind, message string) domain.Violation {
	return domain.Violation{Kind: kind, Message: message}
}

func formatSuggestion(date *time.Time) string {
	if date == nil {
		return noSuggestion
	}
	return date.Format(domain.DateFormat)
}

// minimumLookup ищет ресурс минимума в событии как есть, затем с заглавной первой буквой
func minimumLookup(event *domain.Event, resource string) int {
	if qty, ok := event.Resources[resource]; ok {
		return qty
	}
	return event.Quantity(capitalize(resource))
}

// capitalize первая буква заглавная, остальные строчные
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
