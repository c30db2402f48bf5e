package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	addEventHandler "github.com/m04kA/SMC-EventPlanner/internal/api/handlers/add_event"
	clearEventsHandler "github.com/m04kA/SMC-EventPlanner/internal/api/handlers/clear_events"
	getCatalogHandler "github.com/m04kA/SMC-EventPlanner/internal/api/handlers/get_catalog"
	listEventsHandler "github.com/m04kA/SMC-EventPlanner/internal/api/handlers/list_events"
	nextFreeDateHandler "github.com/m04kA/SMC-EventPlanner/internal/api/handlers/next_free_date"
	removeEventHandler "github.com/m04kA/SMC-EventPlanner/internal/api/handlers/remove_event"
	"github.com/m04kA/SMC-EventPlanner/internal/api/middleware"
	"github.com/m04kA/SMC-EventPlanner/pkg/metrics"
)

// Handlers обработчики API
type Handlers struct {
	AddEvent     *addEventHandler.Handler
	ListEvents   *listEventsHandler.Handler
	RemoveEvent  *removeEventHandler.Handler
	ClearEvents  *clearEventsHandler.Handler
	NextFreeDate *nextFreeDateHandler.Handler
	GetCatalog   *getCatalogHandler.Handler
}

// RouterOptions middleware и служебные маршруты
type RouterOptions struct {
	Metrics     *metrics.Metrics // nil - метрики выключены
	MetricsPath string
	Logger      middleware.Logger
}

// NewRouter настраивает маршруты /api/v1
func NewRouter(h Handlers, opts RouterOptions) *mux.Router {
	r := mux.NewRouter()

	if opts.Logger != nil {
		r.Use(middleware.RequestID(opts.Logger))
	}

	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics))
		r.Handle(opts.MetricsPath, promhttp.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// --- События ---
	api.HandleFunc("/events", h.AddEvent.Handle).Methods(http.MethodPost)
	api.HandleFunc("/events", h.ListEvents.Handle).Methods(http.MethodGet)
	api.HandleFunc("/events", h.RemoveEvent.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/events/all", h.ClearEvents.Handle).Methods(http.MethodDelete)

	// --- Доступность и каталог ---
	api.HandleFunc("/rooms/{room}/next-free-date", h.NextFreeDate.Handle).Methods(http.MethodGet)
	api.HandleFunc("/catalog", h.GetCatalog.Handle).Methods(http.MethodGet)

	return r
}
