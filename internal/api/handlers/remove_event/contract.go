package remove_event

import (
	"context"

	"github.com/m04kA/SMC-EventPlanner/internal/service/events/models"
)

type EventService interface {
	Remove(ctx context.Context, req *models.RemoveEventRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
