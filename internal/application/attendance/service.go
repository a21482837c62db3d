package attendance

import (
	"context"

	"github.com/baechuer/events-api/internal/contracts"
	"github.com/baechuer/events-api/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

type Service struct {
	attendees AttendeeRepo
	events    EventLookup
	pub       contracts.Publisher
	clock     Clock
}

func New(attendees AttendeeRepo, events EventLookup, clock Clock, pub contracts.Publisher) *Service {
	if pub == nil {
		pub = contracts.NoopPublisher{}
	}
	return &Service{attendees: attendees, events: events, pub: pub, clock: clock}
}

func (s *Service) requireEvent(ctx context.Context, eventID int64) error {
	if eventID <= 0 {
		return domain.ErrNotFound("event not found")
	}
	_, err := s.events.GetByID(ctx, eventID)
	return err
}

// ListForEvent returns every answer recorded for an existing event.
func (s *Service) ListForEvent(ctx context.Context, eventID int64) ([]*domain.Attendee, error) {
	if err := s.requireEvent(ctx, eventID); err != nil {
		return nil, err
	}
	items, err := s.attendees.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*domain.Attendee{}
	}
	return items, nil
}

func (s *Service) GetForUser(ctx context.Context, eventID, userID int64) (*domain.Attendee, error) {
	if userID <= 0 {
		return nil, domain.ErrUnauthorized("authentication required")
	}
	if eventID <= 0 {
		return nil, domain.ErrNotFound("attendance not found")
	}
	return s.attendees.GetByEventAndUser(ctx, eventID, userID)
}

type RespondCmd struct {
	EventID int64
	UserID  int64
	Answer  domain.AttendeeAnswer
}

// Respond creates or replaces the user's answer for the event.
func (s *Service) Respond(ctx context.Context, cmd RespondCmd) (*domain.Attendee, error) {
	if cmd.UserID <= 0 {
		return nil, domain.ErrUnauthorized("authentication required")
	}
	if !cmd.Answer.Valid() {
		return nil, domain.ErrValidationMeta("invalid field", map[string]string{
			"answer": "must be one of: 1 (accepted), 2 (maybe), 3 (rejected)",
		})
	}
	if err := s.requireEvent(ctx, cmd.EventID); err != nil {
		return nil, err
	}

	a := &domain.Attendee{EventID: cmd.EventID, UserID: cmd.UserID, Answer: cmd.Answer}
	if err := s.attendees.Upsert(ctx, a); err != nil {
		return nil, err
	}

	zlog.Info().
		Int64("event_id", a.EventID).
		Int64("user_id", a.UserID).
		Str("answer", a.Answer.String()).
		Msg("attendance recorded")

	contracts.Emit(ctx, s.pub, contracts.RoutingAttendanceUpdated, contracts.AttendancePayload{
		AttendeeID: a.ID,
		EventID:    a.EventID,
		UserID:     a.UserID,
		Answer:     int(a.Answer),
		AnswerName: a.Answer.String(),
	}, s.clock.Now())

	return a, nil
}
