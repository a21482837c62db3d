// Package contracts holds the wire format of domain events emitted to the
// message broker. Consumers rely on version/producer/message_id/occurred_at
// plus the payload for the routing key.
package contracts

import "time"

const (
	Version  = 1
	Producer = "events-api"
)

const (
	RoutingEventCreated      = "event.created"
	RoutingEventUpdated      = "event.updated"
	RoutingEventDeleted      = "event.deleted"
	RoutingAttendanceUpdated = "attendance.updated"
)

type DomainEventEnvelope[T any] struct {
	Version    int       `json:"version"`
	Producer   string    `json:"producer"`
	MessageID  string    `json:"message_id"`
	TraceID    string    `json:"trace_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    T         `json:"payload"`
}

// EventPayload is used for event.created and event.updated.
type EventPayload struct {
	EventID     int64     `json:"event_id"`
	OrganizerID int64     `json:"organizer_id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	When        time.Time `json:"when"`
}

type EventDeletedPayload struct {
	EventID     int64 `json:"event_id"`
	OrganizerID int64 `json:"organizer_id"`
}

type AttendancePayload struct {
	AttendeeID int64  `json:"attendee_id"`
	EventID    int64  `json:"event_id"`
	UserID     int64  `json:"user_id"`
	Answer     int    `json:"answer"`
	AnswerName string `json:"answer_name"`
}
