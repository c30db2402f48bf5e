package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveAdmission("accepted")
		m.ObserveViolation("invalid_date")
		m.SetStoredEvents(3)
		m.ObserveDateSearch(5)
		m.ObservePersist("file", "save", time.Now(), nil)
	})
}

func TestMetrics_Collect(t *testing.T) {
	m := NewWithRegisterer("planner_test", prometheus.NewRegistry())

	m.ObserveAdmission("accepted")
	m.ObserveAdmission("rejected")
	m.ObserveAdmission("rejected")
	m.ObserveViolation("room_already_booked")
	m.SetStoredEvents(7)
	m.ObservePersist("file", "save", time.Now(), errors.New("disk full"))

	assert.Equal(t, float64(2), testutil.ToFloat64(m.AdmissionsTotal.WithLabelValues("rejected")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ViolationsTotal.WithLabelValues("room_already_booked")))
	assert.Equal(t, float64(7), testutil.ToFloat64(m.StoredEvents))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.PersistErrorsTotal.WithLabelValues("file", "save")))
}
