package domain

import (
	"strings"
	"time"
)

const (
	maxNameLen        = 255
	maxDescriptionLen = 4000
	maxAddressLen     = 255
)

// Event is an organizer-owned happening. The Attendee* counters are derived
// from attendee rows at read time and are never persisted.
type Event struct {
	ID          int64
	Name        string
	Description string
	Address     string
	When        time.Time
	OrganizerID int64

	AttendeeCount    int
	AttendeeAccepted int
	AttendeeMaybe    int
	AttendeeRejected int
}

func NewEvent(organizerID int64, name, description, address string, when time.Time) (*Event, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	address = strings.TrimSpace(address)

	if organizerID <= 0 {
		return nil, ErrValidation("organizer_id is required")
	}
	if name == "" || len(name) > maxNameLen {
		return nil, ErrValidation("name is required and must be <= 255 chars")
	}
	if description == "" || len(description) > maxDescriptionLen {
		return nil, ErrValidation("description is required and must be <= 4000 chars")
	}
	if address == "" || len(address) > maxAddressLen {
		return nil, ErrValidation("address is required and must be <= 255 chars")
	}
	if when.IsZero() {
		return nil, ErrValidation("when is required")
	}

	return &Event{
		Name:        name,
		Description: description,
		Address:     address,
		When:        when,
		OrganizerID: organizerID,
	}, nil
}

// IsOrganizer reports whether userID owns the event.
func (e *Event) IsOrganizer(userID int64) bool {
	return userID > 0 && e.OrganizerID == userID
}

// ApplyUpdate merges the non-nil fields onto e. OrganizerID is never touched.
func (e *Event) ApplyUpdate(name, description, address *string, when *time.Time) error {
	if name != nil {
		v := strings.TrimSpace(*name)
		if v == "" || len(v) > maxNameLen {
			return ErrValidation("name must be non-empty and <= 255 chars")
		}
		e.Name = v
	}
	if description != nil {
		v := strings.TrimSpace(*description)
		if v == "" || len(v) > maxDescriptionLen {
			return ErrValidation("description must be non-empty and <= 4000 chars")
		}
		e.Description = v
	}
	if address != nil {
		v := strings.TrimSpace(*address)
		if v == "" || len(v) > maxAddressLen {
			return ErrValidation("address must be non-empty and <= 255 chars")
		}
		e.Address = v
	}
	if when != nil {
		if when.IsZero() {
			return ErrValidation("when must be a valid date")
		}
		e.When = *when
	}
	return nil
}

var whenLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseWhen parses an event date from user input. Inputs without a zone
// offset are interpreted in loc.
func ParseWhen(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrValidationMeta("invalid field", map[string]string{"when": "required"})
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range whenLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrValidationMeta("invalid field", map[string]string{
		"when": "must be an ISO 8601 date or date-time",
	})
}
