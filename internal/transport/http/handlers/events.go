package handlers

import (
	"net/http"

	"github.com/baechuer/events-api/internal/application/event"
	"github.com/baechuer/events-api/internal/domain"
	"github.com/baechuer/events-api/internal/transport/http/dto"
	"github.com/baechuer/events-api/internal/transport/http/middleware"
	"github.com/baechuer/events-api/internal/transport/http/response"
	"github.com/baechuer/events-api/internal/transport/http/validate"
)

type EventsHandler struct {
	svc    *event.Service
	paging Paging
}

func NewEventsHandler(svc *event.Service, paging Paging) *EventsHandler {
	return &EventsHandler{svc: svc, paging: paging}
}

// Public
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	when, err := domain.ParseWhenFilter(r.URL.Query().Get("when"))
	if err != nil {
		response.Err(w, r, err)
		return
	}

	opts, err := h.paging.options(r, true)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	page, err := h.svc.ListFiltered(r.Context(), when, opts)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, dto.ToEventPage(page))
}

func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := validate.PathID(r, "event_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	ev, err := h.svc.GetWithAttendeeCount(r.Context(), id)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, dto.ToEventResp(ev))
}

func (h *EventsHandler) ListOrganizedBy(w http.ResponseWriter, r *http.Request) {
	userID, err := validate.PathID(r, "user_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	opts, err := h.paging.options(r, false)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	page, err := h.svc.ListOrganizedBy(r.Context(), userID, opts)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, dto.ToEventPage(page))
}

// Organizer
func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEventReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		response.Err(w, r, err)
		return
	}

	ev, err := h.svc.Create(r.Context(), event.CreateCmd{
		ActorID:     middleware.UserID(r),
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		When:        req.When,
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusCreated, dto.ToEventResp(ev))
}

func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := validate.PathID(r, "event_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	var req dto.UpdateEventReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		response.Err(w, r, err)
		return
	}

	ev, err := h.svc.Update(r.Context(), event.UpdateCmd{
		ActorID:     middleware.UserID(r),
		EventID:     id,
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		When:        req.When,
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, dto.ToEventResp(ev))
}

func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := validate.PathID(r, "event_id")
	if err != nil {
		response.Err(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id, middleware.UserID(r)); err != nil {
		response.Err(w, r, err)
		return
	}
	response.NoContent(w)
}
