package event

import (
	"context"

	"github.com/baechuer/events-api/internal/domain"
	"github.com/baechuer/events-api/internal/pagination"
)

// querySource binds a Query to the repository so the paginator can count
// and fetch it.
type querySource struct {
	repo EventRepo
	q    Query
}

func (s querySource) Count(ctx context.Context) (int, error) {
	return s.repo.CountEvents(ctx, s.q)
}

func (s querySource) Fetch(ctx context.Context, offset, limit int) ([]*domain.Event, error) {
	return s.repo.FindEvents(ctx, s.q, offset, limit)
}

func (s *Service) list(ctx context.Context, q Query, opts pagination.Options) (pagination.Page[*domain.Event], error) {
	return pagination.Paginate[*domain.Event](ctx, querySource{repo: s.repo, q: q}, opts)
}

// ListFiltered lists events with counts inside the calendar window selected
// by when, evaluated against the service clock.
func (s *Service) ListFiltered(ctx context.Context, when domain.WhenFilter, opts pagination.Options) (pagination.Page[*domain.Event], error) {
	if !when.Valid() {
		return pagination.Page[*domain.Event]{}, domain.ErrValidationMeta("invalid query param", map[string]string{
			"when": "unknown filter",
		})
	}
	return s.list(ctx, FilteredQuery(when, s.clock.Now()), opts)
}

func (s *Service) ListOrganizedBy(ctx context.Context, userID int64, opts pagination.Options) (pagination.Page[*domain.Event], error) {
	return s.list(ctx, OrganizedByQuery(userID), opts)
}

func (s *Service) ListAttendedBy(ctx context.Context, userID int64, opts pagination.Options) (pagination.Page[*domain.Event], error) {
	if userID <= 0 {
		return pagination.Page[*domain.Event]{}, domain.ErrUnauthorized("authentication required")
	}
	return s.list(ctx, AttendedByQuery(userID), opts)
}
