package dbmetrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", operation("SELECT id FROM events"))
	assert.Equal(t, "insert", operation("\n\tINSERT INTO events (event_type) VALUES ($1)"))
	assert.Equal(t, "unknown", operation("   "))
}

func TestGetExecutor_WithoutTransaction(t *testing.T) {
	db := Wrap(nil, nil)

	assert.False(t, IsInTransaction(context.Background()))
	assert.Same(t, db, GetExecutor(context.Background(), db))
}
