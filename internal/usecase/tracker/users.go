package tracker

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	domaintracker "gumshoe/internal/domain/tracker"
	"gumshoe/internal/errs"
	"gumshoe/internal/ports"
)

type CreateUserInput struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Password  string
}

func (s *Service) CreateUser(ctx context.Context, input CreateUserInput) (ports.User, error) {
	if ctx == nil {
		return ports.User{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return ports.User{}, errs.Wrap(err, "check context")
	}

	verr := domaintracker.NewValidationError()
	username := strings.TrimSpace(input.Username)
	if username == "" {
		verr.Add("username", "required")
	}
	if input.Password == "" {
		verr.Add("password", "required")
	}
	if verr.HasErrors() {
		return ports.User{}, verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return ports.User{}, errs.Wrap(err, "hash password")
	}

	user := ports.User{
		Username:  username,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
	}
	if err := s.users.CreateUser(ctx, &user, string(hash)); err != nil {
		return ports.User{}, err
	}
	return user, nil
}

// Authenticate verifies a username/password pair against the stored hash.
// Unknown users and wrong passwords both report ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (ports.User, error) {
	if ctx == nil {
		return ports.User{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return ports.User{}, errs.Wrap(err, "check context")
	}

	user, hash, err := s.users.GetCredentials(ctx, username)
	if errors.Is(err, ports.ErrUserNotFound) {
		return ports.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return ports.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return ports.User{}, ErrInvalidCredentials
	}
	return user, nil
}
