package auth

import (
	"time"

	"github.com/baechuer/events-api/internal/domain"
)

const defaultTokenTTL = 60 * time.Minute

type Service struct {
	users  UserRepo
	hasher PasswordHasher
	signer TokenSigner

	tokenTTL time.Duration
}

func NewService(users UserRepo, hasher PasswordHasher, signer TokenSigner, tokenTTL time.Duration) *Service {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &Service{
		users:    users,
		hasher:   hasher,
		signer:   signer,
		tokenTTL: tokenTTL,
	}
}

// AccessToken is the bearer token handed to clients.
type AccessToken struct {
	Token     string
	TokenType string
	ExpiresIn int64 // seconds
}

type LoginResult struct {
	User  *domain.User
	Token AccessToken
}

type RegisterResult struct {
	User  *domain.User
	Token AccessToken
}

func (s *Service) issueToken(u *domain.User) (AccessToken, error) {
	tok, err := s.signer.SignAccessToken(u.ID, u.Username, s.tokenTTL)
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{
		Token:     tok,
		TokenType: "Bearer",
		ExpiresIn: int64(s.tokenTTL.Seconds()),
	}, nil
}
