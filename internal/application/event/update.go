package event

import (
	"context"
	"time"

	"github.com/baechuer/events-api/internal/contracts"
	"github.com/baechuer/events-api/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

type UpdateCmd struct {
	ActorID int64
	EventID int64

	Name        *string
	Description *string
	Address     *string
	When        *string
}

func (s *Service) Update(ctx context.Context, cmd UpdateCmd) (*domain.Event, error) {
	ev, err := s.FindOne(ctx, cmd.EventID)
	if err != nil {
		return nil, err
	}

	if !ev.IsOrganizer(cmd.ActorID) {
		return nil, domain.ErrForbidden("only the organizer can update this event")
	}

	now := s.clock.Now()

	// when is re-parsed only if supplied
	var when *time.Time
	if cmd.When != nil {
		t, err := domain.ParseWhen(*cmd.When, now.Location())
		if err != nil {
			return nil, err
		}
		when = &t
	}

	if err := ev.ApplyUpdate(cmd.Name, cmd.Description, cmd.Address, when); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, ev); err != nil {
		return nil, err
	}

	zlog.Info().Int64("event_id", ev.ID).Int64("actor_id", cmd.ActorID).Msg("event updated")
	contracts.Emit(ctx, s.pub, contracts.RoutingEventUpdated, eventPayload(ev), now)

	// FindOne carries no attendee counts
	return s.GetWithAttendeeCount(ctx, ev.ID)
}
