// Package auth handles user credentials and the JWT cookie that carries a
// verified identity into the API. Handlers behind the middleware only ever see
// an opaque owner name, never credentials.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrUserExists is returned when a signup reuses a taken username.
	ErrUserExists = errors.New("username already taken")
	// ErrUserNotFound is returned by repositories for unknown usernames.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned for unknown users and bad passwords
	// alike so a login failure does not leak which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMissingCredentials is returned when username or password is blank.
	ErrMissingCredentials = errors.New("username and password are required")
)

// User is a stored credential record.
type User struct {
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// UserRepository stores credential records keyed by username.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) error
	GetUser(ctx context.Context, username string) (User, error)
}

// Service registers users and verifies logins.
type Service struct {
	users UserRepository
	now   func() time.Time
}

// NewService wires credential handling to its user store.
func NewService(users UserRepository) *Service {
	return &Service{
		users: users,
		now:   time.Now,
	}
}

// Register stores a new user with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return ErrMissingCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.users.CreateUser(ctx, User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	})
}

// Authenticate verifies a username/password pair and returns the stored user.
func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return User{}, ErrInvalidCredentials
	}

	user, err := s.users.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}
