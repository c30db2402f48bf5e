package get_catalog

import (
	"context"

	"github.com/m04kA/SMC-EventPlanner/internal/service/events/models"
)

type CatalogService interface {
	Catalog(ctx context.Context) *models.CatalogResponse
}
