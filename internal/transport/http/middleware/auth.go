package middleware

import (
	"context"
	"net/http"
	"strings"

	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/events-api/internal/domain"
	"github.com/baechuer/events-api/internal/transport/http/response"
)

type ctxKey string

const ctxUser ctxKey = "user"

// Authenticator resolves a bearer token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

type AuthMiddleware struct {
	auth Authenticator
}

func NewAuth(auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// Require rejects requests without a valid bearer token and stores the
// resolved user in the request context.
func (a *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			response.Err(w, r, domain.ErrUnauthorized("missing bearer token"))
			return
		}

		u, err := a.auth.Authenticate(r.Context(), raw)
		if err != nil {
			zlog.Debug().Err(err).Str("path", r.URL.Path).Msg("authentication failed")
			response.Err(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), ctxUser, u)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	tok := strings.TrimSpace(h[len(prefix):])
	return tok, tok != ""
}

// CurrentUser returns the user stored by Require, or nil.
func CurrentUser(r *http.Request) *domain.User {
	if u, ok := r.Context().Value(ctxUser).(*domain.User); ok {
		return u
	}
	return nil
}

func UserID(r *http.Request) int64 {
	if u := CurrentUser(r); u != nil {
		return u.ID
	}
	return 0
}

// WithUser is used by tests and internal callers to seed the context.
func WithUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, ctxUser, u)
}
