package auth

import (
	"context"
	"strings"

	"github.com/baechuer/events-api/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

type RegisterCmd struct {
	Username        string
	Password        string
	RetypedPassword string
	Email           string
	FirstName       string
	LastName        string
}

func (s *Service) Register(ctx context.Context, cmd RegisterCmd) (RegisterResult, error) {
	username := strings.TrimSpace(cmd.Username)
	email := strings.ToLower(strings.TrimSpace(cmd.Email))

	if username == "" || email == "" || cmd.Password == "" {
		return RegisterResult{}, domain.ErrValidation("username, email and password are required")
	}
	if cmd.Password != cmd.RetypedPassword {
		return RegisterResult{}, domain.ErrBadRequestMeta("passwords are not identical", map[string]string{
			"retyped_password": "must match password",
		})
	}

	hash, err := s.hasher.Hash(cmd.Password)
	if err != nil {
		return RegisterResult{}, err
	}

	u := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		FirstName:    strings.TrimSpace(cmd.FirstName),
		LastName:     strings.TrimSpace(cmd.LastName),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return RegisterResult{}, err
	}

	zlog.Info().Int64("user_id", u.ID).Str("username", u.Username).Msg("user registered")

	tok, err := s.issueToken(u)
	if err != nil {
		return RegisterResult{}, err
	}
	return RegisterResult{User: u, Token: tok}, nil
}
