package domain

import (
	"strings"
	"time"
)

// ViolationKind тип нарушенного правила
type ViolationKind string

const (
	KindInvalidDate                 ViolationKind = "invalid_date"
	KindUnknownEventType            ViolationKind = "unknown_event_type"
	KindUnknownRoom                 ViolationKind = "unknown_room"
	KindEmptyResources              ViolationKind = "empty_resources"
	KindMissingRequiredResource     ViolationKind = "missing_required_resource"
	KindMissingCoRequisite          ViolationKind = "missing_co_requisite"
	KindForbiddenResource           ViolationKind = "forbidden_resource"
	KindForbiddenEventInRoom        ViolationKind = "forbidden_event_in_room"
	KindMissingMandatoryStaff       ViolationKind = "missing_mandatory_staff"
	KindInsufficientGlobalResource  ViolationKind = "insufficient_global_resource"
	KindRoomAlreadyBooked           ViolationKind = "room_already_booked"
	KindInsufficientSameDayResource ViolationKind = "insufficient_same_day_resource"
)

// IsCapacity возвращает true для нарушений, к которым прикладывается предложение даты
func (k ViolationKind) IsCapacity() bool {
	return k == KindRoomAlreadyBooked || k == KindInsufficientSameDayResource
}

// Violation нарушение одного правила
type Violation struct {
	Kind          ViolationKind
	Message       string
	SuggestedDate *time.Time // только для нарушений вместимости; nil - дата не найдена
}

// Violations список нарушений, возвращаемый при отказе в бронировании
// Реализует error: errors.Is(err, ErrRejected) == true
type Violations []Violation

func (v Violations) Error() string {
	return "event rejected: " + strings.Join(v.Messages(), "; ")
}

// Is позволяет сравнивать с ErrRejected через errors.Is
func (v Violations) Is(target error) bool {
	return target == ErrRejected
}

// Messages возвращает тексты нарушений в порядке проверок
func (v Violations) Messages() []string {
	messages := make([]string, len(v))
	for i, violation := range v {
		messages[i] = violation.Message
	}
	return messages
}

// Has проверяет наличие нарушения указанного типа
func (v Violations) Has(kind ViolationKind) bool {
	for _, violation := range v {
		if violation.Kind == kind {
			return true
		}
	}
	return false
}

// OfKind возвращает нарушения указанного типа
func (v Violations) OfKind(kind ViolationKind) Violations {
	var out Violations
	for _, violation := range v {
		if violation.Kind == kind {
			out = append(out, violation)
		}
	}
	return out
}
