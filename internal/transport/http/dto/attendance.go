package dto

type RespondReq struct {
	Answer int `json:"answer" validate:"required,oneof=1 2 3"`
}

type AttendeeResp struct {
	ID         int64  `json:"id"`
	EventID    int64  `json:"event_id"`
	UserID     int64  `json:"user_id"`
	Answer     int    `json:"answer"`
	AnswerName string `json:"answer_name"`
}
