package pgevents

import (
	"context"
	"fmt"
)

// schema таблицы событий и их ресурсов
const schema = `
CREATE TABLE IF NOT EXISTS events (
    id         BIGSERIAL PRIMARY KEY,
    event_type VARCHAR(100) NOT NULL,
    room       VARCHAR(100) NOT NULL,
    event_date DATE         NOT NULL,
    created_at TIMESTAMP    NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_events_date_room ON events (event_date, room);

CREATE TABLE IF NOT EXISTS event_resources (
    event_id BIGINT       NOT NULL REFERENCES events (id) ON DELETE CASCADE,
    resource VARCHAR(100) NOT NULL,
    quantity INTEGER      NOT NULL CHECK (quantity > 0),
    PRIMARY KEY (event_id, resource)
);
`

// EnsureSchema создает таблицы, если их нет
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("%w: EnsureSchema - %v", ErrExecQuery, err)
	}
	return nil
}
