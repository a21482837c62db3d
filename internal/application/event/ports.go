package event

import (
	"context"
	"time"

	"github.com/baechuer/events-api/internal/domain"
)

// Clock returns the current time in the configured application timezone.
type Clock interface {
	Now() time.Time
}

type EventRepo interface {
	// GetByID returns the stored event without derived counts.
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	Create(ctx context.Context, e *domain.Event) error
	Update(ctx context.Context, e *domain.Event) error
	Delete(ctx context.Context, id int64) error

	FindEvents(ctx context.Context, q Query, offset, limit int) ([]*domain.Event, error)
	CountEvents(ctx context.Context, q Query) (int, error)
}
