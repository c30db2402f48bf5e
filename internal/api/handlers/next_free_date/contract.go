package next_free_date

import (
	"context"

	"github.com/m04kA/SMC-EventPlanner/internal/service/events/models"
)

type AvailabilityService interface {
	NextFreeDate(ctx context.Context, req *models.NextFreeDateRequest) (*models.NextFreeDateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
