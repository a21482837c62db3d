package event

import (
	"context"

	"github.com/baechuer/events-api/internal/contracts"
	"github.com/baechuer/events-api/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

type CreateCmd struct {
	ActorID int64

	Name        string
	Description string
	Address     string
	When        string
}

func (s *Service) Create(ctx context.Context, cmd CreateCmd) (*domain.Event, error) {
	if cmd.ActorID <= 0 {
		return nil, domain.ErrUnauthorized("authentication required")
	}

	now := s.clock.Now()
	when, err := domain.ParseWhen(cmd.When, now.Location())
	if err != nil {
		return nil, err
	}

	e, err := domain.NewEvent(cmd.ActorID, cmd.Name, cmd.Description, cmd.Address, when)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	zlog.Info().Int64("event_id", e.ID).Int64("organizer_id", e.OrganizerID).Msg("event created")
	contracts.Emit(ctx, s.pub, contracts.RoutingEventCreated, eventPayload(e), now)

	return e, nil
}
