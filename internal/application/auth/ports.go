package auth

import (
	"context"
	"time"

	"github.com/baechuer/events-api/internal/domain"
)

// UserRepo is the persistence port for users.
type UserRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// Create fills u.ID. A taken username or email is a BadRequest.
	Create(ctx context.Context, u *domain.User) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

type TokenClaims struct {
	UserID   int64
	Username string
	Exp      time.Time
}

type TokenSigner interface {
	SignAccessToken(userID int64, username string, ttl time.Duration) (string, error)
	VerifyAccessToken(token string) (TokenClaims, error)
}
