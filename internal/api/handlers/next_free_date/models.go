package next_free_date

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-EventPlanner/internal/domain"
	"github.com/m04kA/SMC-EventPlanner/internal/service/events/models"
)

// dateParam параметр начала поиска; остальные параметры запроса - ресурсы
const dateParam = "date"

// FromQuery строит запрос сервиса из пути и query-параметров
// ?date=2025-06-01&micrófonos=2&guitarras=1
func FromQuery(room string, query url.Values) (*models.NextFreeDateRequest, error) {
	req := &models.NextFreeDateRequest{
		Room:      room,
		Resources: make(map[string]int),
	}

	for key, values := range query {
		if len(values) == 0 {
			continue
		}
		value := values[0]

		if key == dateParam {
			if value == "" {
				continue
			}
			date, err := domain.ParseDate(value)
			if err != nil {
				return nil, fmt.Errorf("invalid date %q: %w", value, err)
			}
			req.Date = &date
			continue
		}

		qty, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity for %q: %w", key, err)
		}
		if qty != 0 {
			req.Resources[key] = qty
		}
	}

	return req, nil
}
