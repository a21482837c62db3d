package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/baechuer/events-api/internal/application/attendance"
	"github.com/baechuer/events-api/internal/application/auth"
	"github.com/baechuer/events-api/internal/application/event"
	"github.com/baechuer/events-api/internal/config"
	"github.com/baechuer/events-api/internal/domain"
	"github.com/baechuer/events-api/internal/infrastructure/security"
	"github.com/baechuer/events-api/internal/transport/http/handlers"
	authmw "github.com/baechuer/events-api/internal/transport/http/middleware"
)

type stubClock struct{}

func (stubClock) Now() time.Time { return time.Date(2025, 12, 26, 12, 0, 0, 0, time.UTC) }

type stubEvents struct{}

func (stubEvents) GetByID(context.Context, int64) (*domain.Event, error) {
	return nil, domain.ErrNotFound("event not found")
}
func (stubEvents) Create(context.Context, *domain.Event) error { return nil }
func (stubEvents) Update(context.Context, *domain.Event) error { return nil }
func (stubEvents) Delete(context.Context, int64) error         { return nil }
func (stubEvents) FindEvents(context.Context, event.Query, int, int) ([]*domain.Event, error) {
	return nil, nil
}
func (stubEvents) CountEvents(context.Context, event.Query) (int, error) { return 0, nil }

type stubAttendees struct{}

func (stubAttendees) ListByEvent(context.Context, int64) ([]*domain.Attendee, error) { return nil, nil }
func (stubAttendees) GetByEventAndUser(context.Context, int64, int64) (*domain.Attendee, error) {
	return nil, domain.ErrNotFound("attendance not found")
}
func (stubAttendees) Upsert(context.Context, *domain.Attendee) error { return nil }

type stubUsers struct{}

func (stubUsers) GetByID(context.Context, int64) (*domain.User, error) {
	return nil, domain.ErrNotFound("user not found")
}
func (stubUsers) GetByUsername(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrNotFound("user not found")
}
func (stubUsers) Create(context.Context, *domain.User) error { return nil }

func newTestRouter(cfg *config.Config, rdb *redis.Client) http.Handler {
	clock := stubClock{}
	paging := handlers.Paging{Default: 10, Max: 100}

	eventSvc := event.New(stubEvents{}, clock, nil)
	attSvc := attendance.New(stubAttendees{}, stubEvents{}, clock, nil)
	authSvc := auth.NewService(stubUsers{}, security.NewBcryptHasher(4), security.NewJWTSigner("secret", "issuer"), time.Hour)

	return New(Handlers{
		Events:     handlers.NewEventsHandler(eventSvc, paging),
		Attendance: handlers.NewAttendanceHandler(attSvc, eventSvc, paging),
		Auth:       handlers.NewAuthHandler(authSvc),
		Health:     handlers.NewHealthHandler(nil),
	}, authmw.NewAuth(authSvc), cfg, rdb)
}

func TestRouter_Routing(t *testing.T) {
	r := newTestRouter(&config.Config{}, nil)

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"healthz", http.MethodGet, "/healthz", http.StatusOK},
		{"readyz", http.MethodGet, "/readyz", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", http.StatusOK},
		{"public_list", http.MethodGet, "/events", http.StatusOK},
		{"public_get_missing", http.MethodGet, "/events/1", http.StatusNotFound},
		{"attendees_missing_event", http.MethodGet, "/events/1/attendees", http.StatusNotFound},
		{"organized_by", http.MethodGet, "/events-organized-by-user/3", http.StatusOK},
		{"create_requires_auth", http.MethodPost, "/events", http.StatusUnauthorized},
		{"update_requires_auth", http.MethodPatch, "/events/1", http.StatusUnauthorized},
		{"delete_requires_auth", http.MethodDelete, "/events/1", http.StatusUnauthorized},
		{"attendance_requires_auth", http.MethodGet, "/events-attendance", http.StatusUnauthorized},
		{"respond_requires_auth", http.MethodPut, "/events-attendance/1", http.StatusUnauthorized},
		{"profile_requires_auth", http.MethodGet, "/auth/profile", http.StatusUnauthorized},
		{"unknown_route", http.MethodGet, "/nope", http.StatusNotFound},
		{"wrong_method", http.MethodPut, "/events", http.StatusMethodNotAllowed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))
			assert.Equal(t, tc.want, rr.Code)
		})
	}
}

func TestRouter_SetsRequestIDAndSecurityHeaders(t *testing.T) {
	r := newTestRouter(&config.Config{}, nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.NotEmpty(t, rr.Header().Get(authmw.HeaderXRequestID))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
}

func TestRouter_RateLimit(t *testing.T) {
	r := newTestRouter(&config.Config{RLEnabled: true, RLLimit: 1, RLWindow: time.Minute}, nil)

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestRouter_CredentialRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	r := newTestRouter(&config.Config{LoginRLCapacity: 2, LoginRLWindow: time.Minute}, rdb)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"ghost","password":"secret"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusUnauthorized, http.StatusUnauthorized, http.StatusTooManyRequests}, codes)

	// other routes are not charged against the credential bucket
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/events", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
