package attendance

import (
	"context"
	"time"

	"github.com/baechuer/events-api/internal/domain"
)

type Clock interface {
	Now() time.Time
}

type AttendeeRepo interface {
	ListByEvent(ctx context.Context, eventID int64) ([]*domain.Attendee, error)
	// GetByEventAndUser returns NotFound when the user has not answered.
	GetByEventAndUser(ctx context.Context, eventID, userID int64) (*domain.Attendee, error)
	// Upsert inserts or replaces the answer for (EventID, UserID) and fills ID.
	Upsert(ctx context.Context, a *domain.Attendee) error
}

// EventLookup is the slice of the event repository this service needs.
type EventLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
}
