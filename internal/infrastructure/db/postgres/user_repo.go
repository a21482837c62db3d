package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/baechuer/events-api/internal/domain"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	err := r.db.QueryRowContext(ctx, insertUserSQL,
		u.Username, u.PasswordHash, u.Email, u.FirstName, u.LastName,
	).Scan(&u.ID)
	if isUniqueViolation(err) {
		return domain.ErrBadRequest("username or email already taken")
	}
	return err
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, getUserByIDSQL, id))
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, getUserByUsernameSQL, username))
}

func (r *UserRepo) scanOne(row *sql.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.FirstName, &u.LastName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
