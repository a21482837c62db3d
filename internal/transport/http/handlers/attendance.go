package handlers

import (
	"net/http"

	"github.com/baechuer/events-api/internal/application/attendance"
	"github.com/baechuer/events-api/internal/application/event"
	"github.com/baechuer/events-api/internal/domain"
	"github.com/baechuer/events-api/internal/transport/http/dto"
	"github.com/baechuer/events-api/internal/transport/http/middleware"
	"github.com/baechuer/events-api/internal/transport/http/response"
	"github.com/baechuer/events-api/internal/transport/http/validate"
)

type AttendanceHandler struct {
	svc    *attendance.Service
	events *event.Service
	paging Paging
}

func NewAttendanceHandler(svc *attendance.Service, events *event.Service, paging Paging) *AttendanceHandler {
	return &AttendanceHandler{svc: svc, events: events, paging: paging}
}

// ListForEvent returns every answer recorded for the event.
func (h *AttendanceHandler) ListForEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := validate.PathID(r, "event_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	items, err := h.svc.ListForEvent(r.Context(), eventID)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, dto.ToAttendeeList(items))
}

// ListMine pages through the events the caller has answered.
func (h *AttendanceHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	opts, err := h.paging.options(r, false)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	page, err := h.events.ListAttendedBy(r.Context(), middleware.UserID(r), opts)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, dto.ToEventPage(page))
}

func (h *AttendanceHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	eventID, err := validate.PathID(r, "event_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	a, err := h.svc.GetForUser(r.Context(), eventID, middleware.UserID(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, dto.ToAttendeeResp(a))
}

func (h *AttendanceHandler) Respond(w http.ResponseWriter, r *http.Request) {
	eventID, err := validate.PathID(r, "event_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	var req dto.RespondReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		response.Err(w, r, err)
		return
	}

	a, err := h.svc.Respond(r.Context(), attendance.RespondCmd{
		EventID: eventID,
		UserID:  middleware.UserID(r),
		Answer:  domain.AttendeeAnswer(req.Answer),
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, dto.ToAttendeeResp(a))
}
