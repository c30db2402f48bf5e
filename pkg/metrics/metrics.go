package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Планировщик
	AdmissionsTotal    *prometheus.CounterVec
	ViolationsTotal    *prometheus.CounterVec
	StoredEvents       prometheus.Gauge
	DateSearchDays     prometheus.Histogram
	PersistDuration    *prometheus.HistogramVec
	PersistErrorsTotal *prometheus.CounterVec

	// База данных
	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
	DBIdleConnections  prometheus.Gauge
	DBWaitCountTotal   prometheus.Gauge
}

// New создает и регистрирует метрики в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в переданном реестре
// Используется в тестах с prometheus.NewRegistry()
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		AdmissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "planner_admissions_total",
			Help:        "Admission decisions by result (accepted, rejected, error)",
			ConstLabels: constLabels,
		}, []string{"result"}),
		ViolationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "planner_violations_total",
			Help:        "Rule violations reported to callers, by kind",
			ConstLabels: constLabels,
		}, []string{"kind"}),
		StoredEvents: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "planner_stored_events",
			Help:        "Number of accepted events currently held by the store",
			ConstLabels: constLabels,
		}),
		DateSearchDays: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "planner_date_search_days",
			Help:        "Days scanned by the next-free-date search",
			ConstLabels: constLabels,
			Buckets:     []float64{1, 2, 5, 10, 30, 90, 180, 365},
		}),
		PersistDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "planner_persist_duration_seconds",
			Help:        "Duration of event list persistence",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"driver", "operation"}),
		PersistErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "planner_persist_errors_total",
			Help:        "Failed persistence operations",
			ConstLabels: constLabels,
		}, []string{"driver", "operation"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}),
		DBInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}),
		DBIdleConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}),
		DBWaitCountTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count_total",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.AdmissionsTotal,
		m.ViolationsTotal,
		m.StoredEvents,
		m.DateSearchDays,
		m.PersistDuration,
		m.PersistErrorsTotal,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCountTotal,
	)

	return m
}

// ObserveAdmission фиксирует результат проверки события
func (m *Metrics) ObserveAdmission(result string) {
	if m == nil {
		return
	}
	m.AdmissionsTotal.WithLabelValues(result).Inc()
}

// ObserveViolation фиксирует нарушение правила
func (m *Metrics) ObserveViolation(kind string) {
	if m == nil {
		return
	}
	m.ViolationsTotal.WithLabelValues(kind).Inc()
}

// SetStoredEvents обновляет количество событий в хранилище
func (m *Metrics) SetStoredEvents(n int) {
	if m == nil {
		return
	}
	m.StoredEvents.Set(float64(n))
}

// ObserveDateSearch фиксирует количество просмотренных дней при поиске свободной даты
func (m *Metrics) ObserveDateSearch(days int) {
	if m == nil {
		return
	}
	m.DateSearchDays.Observe(float64(days))
}

// ObservePersist фиксирует длительность сохранения/загрузки событий
func (m *Metrics) ObservePersist(driver, operation string, started time.Time, err error) {
	if m == nil {
		return
	}
	m.PersistDuration.WithLabelValues(driver, operation).Observe(time.Since(started).Seconds())
	if err != nil {
		m.PersistErrorsTotal.WithLabelValues(driver, operation).Inc()
	}
}
