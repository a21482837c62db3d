package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/baechuer/events-api/internal/application/event"
	"github.com/baechuer/events-api/internal/domain"
)

type Repo struct {
	db *sql.DB
}

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Create(ctx context.Context, e *domain.Event) error {
	return r.db.QueryRowContext(ctx, insertEventSQL,
		e.Name, e.Description, e.Address, e.When, e.OrganizerID,
	).Scan(&e.ID)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	row := r.db.QueryRowContext(ctx, getEventSQL, id)

	var e domain.Event
	err := row.Scan(&e.ID, &e.Name, &e.Description, &e.Address, &e.When, &e.OrganizerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound("event not found")
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repo) Update(ctx context.Context, e *domain.Event) error {
	res, err := r.db.ExecContext(ctx, updateEventSQL,
		e.ID, e.Name, e.Description, e.Address, e.When,
	)
	if err != nil {
		return err
	}
	return requireAffected(res, "event not found")
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteEventSQL, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "event not found")
}

// FindEvents executes q and returns one page of rows.
func (r *Repo) FindEvents(ctx context.Context, q event.Query, offset, limit int) ([]*domain.Event, error) {
	query, args, err := buildSelect(q, offset, limit)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}
	defer rows.Close()

	var out []*domain.Event
	for rows.Next() {
		var e domain.Event
		dest := []any{&e.ID, &e.Name, &e.Description, &e.Address, &e.When, &e.OrganizerID}
		for _, a := range q.Aggregates {
			dest = append(dest, aggregateTarget(&e, a.Into))
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountEvents counts rows matching q, ignoring paging.
func (r *Repo) CountEvents(ctx context.Context, q event.Query) (int, error) {
	query, args, err := buildCount(q)
	if err != nil {
		return 0, err
	}

	var total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return total, nil
}

// Ping backs the readiness check.
func (r *Repo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func requireAffected(res sql.Result, msg string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound(msg)
	}
	return nil
}
