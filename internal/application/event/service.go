package event

import (
	"context"

	"github.com/baechuer/events-api/internal/contracts"
	"github.com/baechuer/events-api/internal/domain"
)

type Service struct {
	repo  EventRepo
	pub   contracts.Publisher
	clock Clock
}

func New(repo EventRepo, clock Clock, pub contracts.Publisher) *Service {
	if pub == nil {
		pub = contracts.NoopPublisher{}
	}
	return &Service{repo: repo, pub: pub, clock: clock}
}

// FindOne returns the stored event without derived counts.
func (s *Service) FindOne(ctx context.Context, id int64) (*domain.Event, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound("event not found")
	}
	return s.repo.GetByID(ctx, id)
}

// GetWithAttendeeCount returns the event with all derived counts filled in.
func (s *Service) GetWithAttendeeCount(ctx context.Context, id int64) (*domain.Event, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound("event not found")
	}
	items, err := s.repo.FindEvents(ctx, ByIDQuery(id), 0, 1)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrNotFound("event not found")
	}
	return items[0], nil
}

func eventPayload(e *domain.Event) contracts.EventPayload {
	return contracts.EventPayload{
		EventID:     e.ID,
		OrganizerID: e.OrganizerID,
		Name:        e.Name,
		Address:     e.Address,
		When:        e.When,
	}
}
