package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/parixitpatel/EventmanagerNew/internal/core/domain"
)

const eventColumns = `id, title, description, event_date, event_time, location`

type EventRepository struct {
	db      DBTX
	dialect Dialect
}

func NewEventRepository(db DBTX, dialect Dialect) *EventRepository {
	return &EventRepository{db: db, dialect: dialect}
}

func (r *EventRepository) List(ctx context.Context) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
		 ORDER BY event_date ASC, event_time ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return events, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id int64) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
		 WHERE id = ?`

	e, err := scanEvent(r.db.QueryRowContext(ctx, rebind(r.dialect, query), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	query :=
		`INSERT INTO events (title, description, event_date, event_time, location)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, rebind(r.dialect, query),
		e.Title, e.Description, e.DateString(), e.TimeString(), e.Location).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *EventRepository) Update(ctx context.Context, e *domain.Event) error {
	query :=
		`UPDATE events
		 SET title = ?, description = ?, event_date = ?, event_time = ?, location = ?
		 WHERE id = ?`

	res, err := r.db.ExecContext(ctx, rebind(r.dialect, query),
		e.Title, e.Description, e.DateString(), e.TimeString(), e.Location, e.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, rebind(r.dialect, `DELETE FROM events WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	var (
		e           domain.Event
		date, clock string
	)
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &date, &clock, &e.Location); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	var err error
	if e.Date, err = domain.ParseDate(date); err != nil {
		return nil, fmt.Errorf("db error: event %d: %w", e.ID, err)
	}
	if e.Time, err = domain.ParseTime(clock); err != nil {
		return nil, fmt.Errorf("db error: event %d: %w", e.ID, err)
	}
	return &e, nil
}
