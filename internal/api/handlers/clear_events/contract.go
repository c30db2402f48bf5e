package clear_events

import (
	"context"

	"github.com/m04kA/SMC-EventPlanner/internal/service/events/models"
)

type EventService interface {
	Clear(ctx context.Context) (*models.ClearEventsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
