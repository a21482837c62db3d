package dto

import (
	"github.com/baechuer/events-api/internal/domain"
	"github.com/baechuer/events-api/internal/pagination"
)

func ToEventResp(e *domain.Event) EventResp {
	return EventResp{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Address:     e.Address,
		When:        e.When,
		OrganizerID: e.OrganizerID,

		AttendeeCount:    e.AttendeeCount,
		AttendeeAccepted: e.AttendeeAccepted,
		AttendeeMaybe:    e.AttendeeMaybe,
		AttendeeRejected: e.AttendeeRejected,
	}
}

func ToEventPage(p pagination.Page[*domain.Event]) pagination.Page[EventResp] {
	return pagination.Map(p, ToEventResp)
}

func ToAttendeeResp(a *domain.Attendee) AttendeeResp {
	return AttendeeResp{
		ID:         a.ID,
		EventID:    a.EventID,
		UserID:     a.UserID,
		Answer:     int(a.Answer),
		AnswerName: a.Answer.String(),
	}
}

func ToAttendeeList(items []*domain.Attendee) []AttendeeResp {
	out := make([]AttendeeResp, 0, len(items))
	for _, a := range items {
		out = append(out, ToAttendeeResp(a))
	}
	return out
}

// ToUserResp never exposes the password hash.
func ToUserResp(u *domain.User) UserResp {
	return UserResp{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
