package dto

import "time"

type CreateEventReq struct {
	Name        string `json:"name" validate:"required,min=5,max=255"`
	Description string `json:"description" validate:"required,min=5,max=4000"`
	Address     string `json:"address" validate:"required,min=5,max=255"`
	When        string `json:"when" validate:"required"`
}

type UpdateEventReq struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=5,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=5,max=4000"`
	Address     *string `json:"address,omitempty" validate:"omitempty,min=5,max=255"`
	When        *string `json:"when,omitempty" validate:"omitempty,min=1"`
}

type EventResp struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	When        time.Time `json:"when"`
	OrganizerID int64     `json:"organizer_id"`

	AttendeeCount    int `json:"attendee_count"`
	AttendeeAccepted int `json:"attendee_accepted"`
	AttendeeMaybe    int `json:"attendee_maybe"`
	AttendeeRejected int `json:"attendee_rejected"`
}
