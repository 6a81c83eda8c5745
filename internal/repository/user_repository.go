package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/ticketflow/internal/model"
)

// UserRepo provides lookups and creation for the 'users' table. Users
// carry no credentials: an account is nothing more than a unique email
// plus a creation timestamp, created lazily on first OTP verification.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// GetByEmail fetches a user by normalized email. Returns ErrUserNotFound
// when the email is unknown.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, email, created_at FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// Create inserts a user row for the given email and reads the row back
// so the caller receives the generated id and timestamp.
func (r *UserRepo) Create(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email) VALUES (?)", email)
	if err != nil {
		return model.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	var u model.User
	err = r.DB.QueryRowContext(ctx,
		"SELECT id, email, created_at FROM users WHERE id=? LIMIT 1",
		uint64(id)).Scan(&u.ID, &u.Email, &u.CreatedAt)
	return u, err
}
