package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EventPlanner/internal/domain"
	"github.com/m04kA/SMC-EventPlanner/pkg/logger"
)

type persisterStub struct {
	events   []*domain.Event
	err      error
	deadline bool
}

func (p *persisterStub) Save(ctx context.Context, events []*domain.Event) error {
	_, p.deadline = ctx.Deadline()
	p.events = events
	return p.err
}

func (p *persisterStub) Load(ctx context.Context) ([]*domain.Event, error) {
	_, p.deadline = ctx.Deadline()
	return p.events, p.err
}

type observation struct {
	driver    string
	operation string
	failed    bool
}

type metricsStub struct {
	observations []observation
}

func (m *metricsStub) ObservePersist(driver, operation string, _ time.Time, err error) {
	m.observations = append(m.observations, observation{driver: driver, operation: operation, failed: err != nil})
}

func TestObserved_Save(t *testing.T) {
	next := &persisterStub{}
	m := &metricsStub{}
	o := NewObserved(next, "file", time.Second, m, logger.NewNop())

	event, err := domain.NewEvent("concierto", "Sala A", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)

	require.NoError(t, o.Save(context.Background(), []*domain.Event{event}))

	assert.Len(t, next.events, 1)
	assert.True(t, next.deadline)
	assert.Equal(t, []observation{{driver: "file", operation: operationSave}}, m.observations)
}

func TestObserved_LoadError(t *testing.T) {
	next := &persisterStub{err: errors.New("boom")}
	m := &metricsStub{}
	o := NewObserved(next, "mongo", 0, m, logger.NewNop())

	_, err := o.Load(context.Background())

	assert.EqualError(t, err, "boom")
	assert.False(t, next.deadline, "zero timeout leaves the context without deadline")
	assert.Equal(t, []observation{{driver: "mongo", operation: operationLoad, failed: true}}, m.observations)
}
