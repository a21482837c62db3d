package domain

import "strings"

type AttendeeAnswer int

const (
	AnswerAccepted AttendeeAnswer = iota + 1
	AnswerMaybe
	AnswerRejected
)

func (a AttendeeAnswer) Valid() bool {
	switch a {
	case AnswerAccepted, AnswerMaybe, AnswerRejected:
		return true
	default:
		return false
	}
}

func (a AttendeeAnswer) String() string {
	switch a {
	case AnswerAccepted:
		return "accepted"
	case AnswerMaybe:
		return "maybe"
	case AnswerRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// ParseAttendeeAnswer accepts either the numeric code or the lowercase name.
func ParseAttendeeAnswer(s string) (AttendeeAnswer, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "accepted":
		return AnswerAccepted, nil
	case "2", "maybe":
		return AnswerMaybe, nil
	case "3", "rejected":
		return AnswerRejected, nil
	}
	return 0, ErrValidationMeta("invalid field", map[string]string{
		"answer": "must be one of: 1 (accepted), 2 (maybe), 3 (rejected)",
	})
}

// Attendee is a user's RSVP against one event. There is at most one per
// (EventID, UserID) pair.
type Attendee struct {
	ID      int64
	EventID int64
	UserID  int64
	Answer  AttendeeAnswer
}
