package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/baechuer/events-api/internal/application/attendance"
	"github.com/baechuer/events-api/internal/application/auth"
	"github.com/baechuer/events-api/internal/application/event"
	"github.com/baechuer/events-api/internal/domain"
	"github.com/baechuer/events-api/internal/infrastructure/security"
	"github.com/baechuer/events-api/internal/transport/http/middleware"
)

type mockClock struct{ t time.Time }

func (m mockClock) Now() time.Time { return m.t }

var testNow = time.Date(2025, 12, 24, 15, 30, 0, 0, time.UTC)

// memAttendees is shared by memEvents so attendance predicates and counts
// see the same rows.
type memAttendees struct {
	mu     sync.Mutex
	nextID int64
	rows   []*domain.Attendee
}

func (m *memAttendees) ListByEvent(_ context.Context, eventID int64) ([]*domain.Attendee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Attendee
	for _, a := range m.rows {
		if a.EventID == eventID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memAttendees) GetByEventAndUser(_ context.Context, eventID, userID int64) (*domain.Attendee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.rows {
		if a.EventID == eventID && a.UserID == userID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound("attendance not found")
}

func (m *memAttendees) Upsert(_ context.Context, a *domain.Attendee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.EventID == a.EventID && row.UserID == a.UserID {
			row.Answer = a.Answer
			a.ID = row.ID
			return nil
		}
	}
	m.nextID++
	a.ID = m.nextID
	cp := *a
	m.rows = append(m.rows, &cp)
	return nil
}

func (m *memAttendees) count(eventID int64, answer domain.AttendeeAnswer) int {
	n := 0
	for _, a := range m.rows {
		if a.EventID == eventID && (answer == 0 || a.Answer == answer) {
			n++
		}
	}
	return n
}

func (m *memAttendees) attends(eventID, userID int64) bool {
	for _, a := range m.rows {
		if a.EventID == eventID && a.UserID == userID {
			return true
		}
	}
	return false
}

type memEvents struct {
	mu          sync.Mutex
	nextID      int64
	events      map[int64]*domain.Event
	attendees   *memAttendees
	deleteCalls int
}

func newMemEvents(att *memAttendees) *memEvents {
	return &memEvents{events: map[int64]*domain.Event{}, attendees: att}
}

func (m *memEvents) seed(organizerID int64, name string, when time.Time) *domain.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	e := &domain.Event{
		ID: m.nextID, Name: name, Description: "description",
		Address: "some address", When: when, OrganizerID: organizerID,
	}
	m.events[e.ID] = e
	return e
}

func (m *memEvents) GetByID(_ context.Context, id int64) (*domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound("event not found")
	}
	cp := *e
	return &cp, nil
}

func (m *memEvents) Create(_ context.Context, e *domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	e.ID = m.nextID
	cp := *e
	m.events[e.ID] = &cp
	return nil
}

func (m *memEvents) Update(_ context.Context, e *domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[e.ID]; !ok {
		return domain.ErrNotFound("event not found")
	}
	cp := *e
	m.events[e.ID] = &cp
	return nil
}

func (m *memEvents) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteCalls++
	if _, ok := m.events[id]; !ok {
		return domain.ErrNotFound("event not found")
	}
	delete(m.events, id)
	return nil
}

func (m *memEvents) match(e *domain.Event, q event.Query) bool {
	for _, p := range q.Predicates {
		switch p.Op {
		case event.OpEq:
			switch p.Field {
			case event.FieldID:
				if e.ID != p.Int {
					return false
				}
			case event.FieldOrganizerID:
				if e.OrganizerID != p.Int {
					return false
				}
			}
		case event.OpRange:
			if e.When.Before(p.From) || !e.When.Before(p.To) {
				return false
			}
		case event.OpAttendedBy:
			if !m.attendees.attends(e.ID, p.Int) {
				return false
			}
		}
	}
	return true
}

func (m *memEvents) filtered(q event.Query) []*domain.Event {
	var out []*domain.Event
	for _, e := range m.events {
		if m.match(e, q) {
			cp := *e
			for _, a := range q.Aggregates {
				n := m.attendees.count(e.ID, a.Answer)
				switch a.Into {
				case event.FieldAttendeeCount:
					cp.AttendeeCount = n
				case event.FieldAttendeeAccepted:
					cp.AttendeeAccepted = n
				case event.FieldAttendeeMaybe:
					cp.AttendeeMaybe = n
				case event.FieldAttendeeRejected:
					cp.AttendeeRejected = n
				}
			}
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (m *memEvents) FindEvents(_ context.Context, q event.Query, offset, limit int) ([]*domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := m.filtered(q)
	if offset >= len(rows) {
		return nil, nil
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end], nil
}

func (m *memEvents) CountEvents(_ context.Context, q event.Query) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.filtered(q)), nil
}

type memUsers struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrNotFound("user not found")
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound("user not found")
}

func (m *memUsers) Create(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return domain.ErrBadRequest("username or email already taken")
		}
	}
	m.nextID++
	u.ID = m.nextID
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

type testEnv struct {
	events    *memEvents
	attendees *memAttendees
	users     *memUsers

	eventSvc *event.Service
	attSvc   *attendance.Service
	authSvc  *auth.Service

	eventsH     *EventsHandler
	attendanceH *AttendanceHandler
	authH       *AuthHandler
}

func newTestEnv() *testEnv {
	att := &memAttendees{}
	evs := newMemEvents(att)
	users := &memUsers{users: map[int64]*domain.User{}}
	clock := mockClock{t: testNow}
	paging := Paging{Default: 10, Max: 100}

	eventSvc := event.New(evs, clock, nil)
	attSvc := attendance.New(att, evs, clock, nil)
	authSvc := auth.NewService(users, security.NewBcryptHasher(4), security.NewJWTSigner("test-secret", "test-issuer"), time.Hour)

	return &testEnv{
		events:      evs,
		attendees:   att,
		users:       users,
		eventSvc:    eventSvc,
		attSvc:      attSvc,
		authSvc:     authSvc,
		eventsH:     NewEventsHandler(eventSvc, paging),
		attendanceH: NewAttendanceHandler(attSvc, eventSvc, paging),
		authH:       NewAuthHandler(authSvc),
	}
}

// newRequest builds a request with chi URL params and an optional caller.
func newRequest(method, target, body string, params map[string]string, caller *domain.User) *http.Request {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if caller != nil {
		ctx = middleware.WithUser(ctx, caller)
	}
	return req.WithContext(ctx)
}
