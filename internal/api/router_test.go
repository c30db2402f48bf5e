package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	addEventHandler "github.com/m04kA/SMC-EventPlanner/internal/api/handlers/add_event"
	clearEventsHandler "github.com/m04kA/SMC-EventPlanner/internal/api/handlers/clear_events"
	getCatalogHandler "github.com/m04kA/SMC-EventPlanner/internal/api/handlers/get_catalog"
	listEventsHandler "github.com/m04kA/SMC-EventPlanner/internal/api/handlers/list_events"
	nextFreeDateHandler "github.com/m04kA/SMC-EventPlanner/internal/api/handlers/next_free_date"
	removeEventHandler "github.com/m04kA/SMC-EventPlanner/internal/api/handlers/remove_event"
	"github.com/m04kA/SMC-EventPlanner/internal/api/middleware"
	"github.com/m04kA/SMC-EventPlanner/internal/infra/rulefile"
	"github.com/m04kA/SMC-EventPlanner/internal/infra/storage/eventstore"
	"github.com/m04kA/SMC-EventPlanner/internal/infra/storage/filesnapshot"
	"github.com/m04kA/SMC-EventPlanner/internal/service/availability"
	eventsService "github.com/m04kA/SMC-EventPlanner/internal/service/events"
	addEventUC "github.com/m04kA/SMC-EventPlanner/internal/usecase/add_event"
	"github.com/m04kA/SMC-EventPlanner/pkg/logger"
	"github.com/m04kA/SMC-EventPlanner/pkg/metrics"
)

type fixedTime struct{}

func (fixedTime) Now() time.Time { return time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC) }

type testServer struct {
	router    http.Handler
	persister *filesnapshot.Persister
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	catalog, err := rulefile.LoadCatalog("../../data/recursos.json")
	require.NoError(t, err)
	rules, err := rulefile.LoadRules("../../data/restricciones.json")
	require.NoError(t, err)

	persister, err := filesnapshot.New(filepath.Join(t.TempDir(), "eventos.json"))
	require.NoError(t, err)

	log := logger.NewNop()
	m := metrics.NewWithRegisterer("planner_test", prometheus.NewRegistry())

	store := eventstore.New()
	engine := availability.NewEngine(store, catalog, 365, m, log)
	mu := &sync.RWMutex{}

	svc := eventsService.NewService(store, persister, engine, catalog, mu, m, log).WithTimeProvider(fixedTime{})
	uc := addEventUC.NewUseCase(store, catalog, rules, engine, persister, mu, 365, m, log).WithTimeProvider(fixedTime{})

	router := NewRouter(Handlers{
		AddEvent:     addEventHandler.NewHandler(uc, log),
		ListEvents:   listEventsHandler.NewHandler(svc, log),
		RemoveEvent:  removeEventHandler.NewHandler(svc, log),
		ClearEvents:  clearEventsHandler.NewHandler(svc, log),
		NextFreeDate: nextFreeDateHandler.NewHandler(svc, log),
		GetCatalog:   getCatalogHandler.NewHandler(svc),
	}, RouterOptions{
		Metrics:     m,
		MetricsPath: "/metrics",
		Logger:      log,
	})

	return &testServer{router: router, persister: persister}
}

func (s *testServer) do(t *testing.T, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

var concert = addEventHandler.AddEventRequest{
	Type: "concierto",
	Room: "Sala A",
	Date: "2025-06-01",
	Resources: map[string]int{
		"micrófonos": 2,
		"cables":     2,
		"técnicos":   1,
		"seguridad":  2,
		"guitarras":  1,
	},
}

func TestRouter_EventLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/events", concert)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[addEventHandler.EventResponse](t, rec)
	assert.Equal(t, "2025-06-01", created.Date)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	persisted, err := s.persister.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, persisted, 1)

	rec = s.do(t, http.MethodGet, "/api/v1/events", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Events []struct {
			Title string `json:"title"`
		} `json:"events"`
		Total int `json:"total"`
	}](t, rec)
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, "concierto | Sala A | 2025-06-01", list.Events[0].Title)

	rec = s.do(t, http.MethodDelete, "/api/v1/events?type=concierto&room=Sala+A&date=2025-06-01", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/v1/events?type=concierto&room=Sala+A&date=2025-06-01", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Evento no encontrado", decode[map[string]string](t, rec)["error"])
}

func TestRouter_RejectedEvent(t *testing.T) {
	s := newTestServer(t)

	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/v1/events", concert).Code)

	rec := s.do(t, http.MethodPost, "/api/v1/events", concert)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	resp := decode[struct {
		Error      string `json:"error"`
		Violations []struct {
			Kind          string  `json:"kind"`
			Message       string  `json:"message"`
			SuggestedDate *string `json:"suggestedDate"`
		} `json:"violations"`
	}](t, rec)

	require.NotEmpty(t, resp.Violations)
	first := resp.Violations[0]
	assert.Equal(t, "room_already_booked", first.Kind)
	require.NotNil(t, first.SuggestedDate)
	assert.Equal(t, "2025-06-02", *first.SuggestedDate)
}

func TestRouter_BadRequests(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		method string
		target string
		body   interface{}
	}{
		{name: "malformed json", method: http.MethodPost, target: "/api/v1/events", body: `{"type":`},
		{name: "unknown field", method: http.MethodPost, target: "/api/v1/events", body: `{"type":"ensayo","extra":1}`},
		{name: "bad date", method: http.MethodPost, target: "/api/v1/events",
			body: `{"type":"ensayo","room":"Sala B","date":"01/06/2025","resources":{"guitarras":1}}`},
		{name: "negative quantity", method: http.MethodPost, target: "/api/v1/events",
			body: `{"type":"ensayo","room":"Sala B","date":"2025-06-01","resources":{"guitarras":-1}}`},
		{name: "remove without params", method: http.MethodDelete, target: "/api/v1/events?type=ensayo"},
		{name: "next free date bad quantity", method: http.MethodGet,
			target: "/api/v1/rooms/Sala%20A/next-free-date?guitarras=dos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, tt.method, tt.target, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestRouter_NextFreeDate(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/v1/events", concert).Code)

	query := url.Values{"date": {"2025-06-01"}, "micrófonos": {"1"}}
	rec := s.do(t, http.MethodGet, "/api/v1/rooms/Sala%20A/next-free-date?"+query.Encode(), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[map[string]interface{}](t, rec)
	assert.Equal(t, "Sala A", resp["room"])
	assert.Equal(t, "2025-06-02", resp["date"])
	assert.Equal(t, true, resp["found"])

	rec = s.do(t, http.MethodGet, "/api/v1/rooms/Sala%20Z/next-free-date", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_ClearAndCatalog(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/v1/events", concert).Code)

	rec := s.do(t, http.MethodDelete, "/api/v1/events/all", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"removed":1}`, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/v1/catalog", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	catalog := decode[struct {
		Rooms []string `json:"rooms"`
	}](t, rec)
	assert.Equal(t, []string{"Sala A", "Sala B", "Sala C"}, catalog.Rooms)

	rec = s.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
