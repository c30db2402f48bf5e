package add_event

import (
	"context"

	addEvent "github.com/m04kA/SMC-EventPlanner/internal/usecase/add_event"
)

type AddEventUseCase interface {
	Execute(ctx context.Context, req *addEvent.Request) (*addEvent.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
