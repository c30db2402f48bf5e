package add_event

import (
	"github.com/m04kA/SMC-EventPlanner/internal/domain"
	addEvent "github.com/m04kA/SMC-EventPlanner/internal/usecase/add_event"
)

// AddEventRequest HTTP request model
type AddEventRequest struct {
	Type      string         `json:"type"`
	Room      string         `json:"room"`
	Date      string         `json:"date"` // "2025-06-01"
	Resources map[string]int `json:"resources"`
}

// EventResponse HTTP response model
type EventResponse struct {
	Type      string         `json:"type"`
	Room      string         `json:"room"`
	Date      string         `json:"date"`
	Resources map[string]int `json:"resources"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AddEventRequest) ToUseCaseRequest() (*addEvent.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	return &addEvent.Request{
		Type:      r.Type,
		Room:      r.Room,
		Date:      date,
		Resources: r.Resources,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *addEvent.Response) *EventResponse {
	return &EventResponse{
		Type:      resp.Type,
		Room:      resp.Room,
		Date:      resp.Date.Format(domain.DateFormat),
		Resources: resp.Resources,
	}
}
