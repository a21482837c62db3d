package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/baechuer/events-api/internal/domain"
)

type AttendeeRepo struct {
	db *sql.DB
}

func NewAttendeeRepo(db *sql.DB) *AttendeeRepo { return &AttendeeRepo{db: db} }

func (r *AttendeeRepo) ListByEvent(ctx context.Context, eventID int64) ([]*domain.Attendee, error) {
	rows, err := r.db.QueryContext(ctx, listAttendeesSQL, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Attendee{}
	for rows.Next() {
		var a domain.Attendee
		if err := rows.Scan(&a.ID, &a.EventID, &a.UserID, &a.Answer); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AttendeeRepo) GetByEventAndUser(ctx context.Context, eventID, userID int64) (*domain.Attendee, error) {
	var a domain.Attendee
	err := r.db.QueryRowContext(ctx, getAttendeeSQL, eventID, userID).
		Scan(&a.ID, &a.EventID, &a.UserID, &a.Answer)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound("attendance not found")
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Upsert relies on the (event_id, user_id) unique constraint so concurrent
// answers from the same user collapse into one row.
func (r *AttendeeRepo) Upsert(ctx context.Context, a *domain.Attendee) error {
	return r.db.QueryRowContext(ctx, upsertAttendeeSQL, a.EventID, a.UserID, int(a.Answer)).Scan(&a.ID)
}
