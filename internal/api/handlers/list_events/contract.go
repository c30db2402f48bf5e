package list_events

import (
	"context"

	"github.com/m04kA/SMC-EventPlanner/internal/service/events/models"
)

type EventService interface {
	ListAll(ctx context.Context) (*models.EventListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
