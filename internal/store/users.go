package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"typetrivia/internal/auth"
)

// CreateUser stores a credential record. An existing username is never
// overwritten; the insert is ignored and ErrUserExists returned instead.
func (s *Store) CreateUser(ctx context.Context, user auth.User) error {
	result, err := s.db.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO users (username, password_hash, created_at_unix)
		 VALUES (?, ?, ?)`,
		user.Username,
		user.PasswordHash,
		user.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return err
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if inserted == 0 {
		return auth.ErrUserExists
	}
	return nil
}

// GetUser looks up a credential record by username.
func (s *Store) GetUser(ctx context.Context, username string) (auth.User, error) {
	var (
		user        auth.User
		createdAtMs int64
	)
	err := s.db.QueryRowContext(
		ctx,
		`SELECT username, password_hash, created_at_unix FROM users WHERE username = ?`,
		username,
	).Scan(&user.Username, &user.PasswordHash, &createdAtMs)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.User{}, auth.ErrUserNotFound
	}
	if err != nil {
		return auth.User{}, err
	}

	user.CreatedAt = time.UnixMilli(createdAtMs).UTC()
	return user, nil
}
