package pgevents

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-EventPlanner/internal/domain"
	"github.com/m04kA/SMC-EventPlanner/pkg/dbmetrics"
	"github.com/m04kA/SMC-EventPlanner/pkg/psqlbuilder"
)

const (
	eventsTable    = "events"
	resourcesTable = "event_resources"
)

// Repository репозиторий событий в PostgreSQL
type Repository struct {
	db        DBExecutor
	txManager TransactionManager
}

// NewRepository создает новый экземпляр репозитория событий
func NewRepository(db DBExecutor, txManager TransactionManager) *Repository {
	return &Repository{db: db, txManager: txManager}
}

// Save заменяет сохранённый список событий в одной транзакции:
// удаление всех строк и вставка текущего списка
func (r *Repository) Save(ctx context.Context, events []*domain.Event) error {
	err := r.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := r.deleteAll(txCtx); err != nil {
			return err
		}
		for _, event := range events {
			if err := r.insert(txCtx, event); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: Save - %v", ErrTransaction, err)
	}
	return nil
}

// Load возвращает все события, отсортированные по дате (в порядке вставки внутри дня)
func (r *Repository) Load(ctx context.Context) ([]*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "event_type", "room", "event_date").
		From(eventsTable).
		OrderBy("event_date ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Load - build select events: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Load - select events: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var ids []int64
	byID := make(map[int64]*domain.Event)
	for rows.Next() {
		var (
			id    int64
			event domain.Event
		)
		if err := rows.Scan(&id, &event.Type, &event.Room, &event.Date); err != nil {
			return nil, fmt.Errorf("%w: Load - scan event: %v", ErrScanRow, err)
		}
		event.Date = domain.DateOnly(event.Date)
		event.Resources = make(map[string]int)
		ids = append(ids, id)
		byID[id] = &event
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Load - iterate events: %v", ErrExecQuery, err)
	}

	if len(ids) > 0 {
		if err := r.loadResources(ctx, executor, ids, byID); err != nil {
			return nil, err
		}
	}

	events := make([]*domain.Event, 0, len(ids))
	for _, id := range ids {
		events = append(events, byID[id])
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return events, nil
}

func (r *Repository) loadResources(ctx context.Context, executor DBExecutor, ids []int64, byID map[int64]*domain.Event) error {
	query, args, err := psqlbuilder.Select("event_id", "resource", "quantity").
		From(resourcesTable).
		Where(squirrel.Eq{"event_id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Load - build select resources: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Load - select resources: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			eventID  int64
			resource string
			quantity int
		)
		if err := rows.Scan(&eventID, &resource, &quantity); err != nil {
			return fmt.Errorf("%w: Load - scan resource: %v", ErrScanRow, err)
		}
		if event, ok := byID[eventID]; ok {
			event.Resources[resource] = quantity
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: Load - iterate resources: %v", ErrExecQuery, err)
	}
	return nil
}

func (r *Repository) deleteAll(ctx context.Context) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// event_resources удаляются каскадно
	query, args, err := psqlbuilder.Delete(eventsTable).ToSql()
	if err != nil {
		return fmt.Errorf("%w: deleteAll - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: deleteAll - execute delete: %v", ErrExecQuery, err)
	}
	return nil
}

func (r *Repository) insert(ctx context.Context, event *domain.Event) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(eventsTable).
		Columns("event_type", "room", "event_date").
		Values(event.Type, event.Room, event.Date).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: insert - build insert event: %v", ErrBuildQuery, err)
	}

	var id int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: insert - no id returned", ErrExecQuery)
		}
		return fmt.Errorf("%w: insert - execute insert event: %v", ErrExecQuery, err)
	}

	if !event.HasResources() {
		return nil
	}

	builder := psqlbuilder.Insert(resourcesTable).Columns("event_id", "resource", "quantity")
	for _, name := range event.ResourceNames() {
		builder = builder.Values(id, name, event.Resources[name])
	}

	query, args, err = builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insert - build insert resources: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insert - execute insert resources: %v", ErrExecQuery, err)
	}
	return nil
}
