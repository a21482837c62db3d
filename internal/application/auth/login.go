package auth

import (
	"context"
	"strings"

	"github.com/baechuer/events-api/internal/domain"
)

func errInvalidCredentials() error { return domain.ErrUnauthorized("invalid credentials") }

// Login checks the password and issues a bearer token.
// Unknown users and wrong passwords produce the same error.
func (s *Service) Login(ctx context.Context, username, password string) (LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return LoginResult{}, errInvalidCredentials()
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if domain.Is(err, domain.CodeNotFound) {
			return LoginResult{}, errInvalidCredentials()
		}
		return LoginResult{}, err
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return LoginResult{}, errInvalidCredentials()
	}

	tok, err := s.issueToken(u)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{User: u, Token: tok}, nil
}

// Authenticate verifies a bearer token and resolves its subject.
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.signer.VerifyAccessToken(token)
	if err != nil {
		return nil, err
	}
	if claims.UserID <= 0 {
		return nil, domain.ErrUnauthorized("invalid token")
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if domain.Is(err, domain.CodeNotFound) {
			return nil, domain.ErrUnauthorized("invalid token")
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound("user not found")
	}
	return s.users.GetByID(ctx, id)
}
