package event

import (
	"context"

	"github.com/baechuer/events-api/internal/contracts"
	"github.com/baechuer/events-api/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

// Delete removes the event by primary key. A missing event short-circuits
// with NotFound before the repository delete is reached.
func (s *Service) Delete(ctx context.Context, eventID, actorID int64) error {
	ev, err := s.FindOne(ctx, eventID)
	if err != nil {
		return err
	}

	if !ev.IsOrganizer(actorID) {
		return domain.ErrForbidden("only the organizer can delete this event")
	}

	if err := s.repo.Delete(ctx, ev.ID); err != nil {
		return err
	}

	zlog.Info().Int64("event_id", ev.ID).Int64("actor_id", actorID).Msg("event deleted")
	contracts.Emit(ctx, s.pub, contracts.RoutingEventDeleted, contracts.EventDeletedPayload{
		EventID:     ev.ID,
		OrganizerID: ev.OrganizerID,
	}, s.clock.Now())

	return nil
}
