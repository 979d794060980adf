package tracker

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"gumshoe/internal/errs"
	"gumshoe/internal/ports"
)

// Login authenticates and opens a session with a fresh random token.
func (s *Service) Login(ctx context.Context, username, password string, ttl time.Duration) (ports.Session, error) {
	if ctx == nil {
		return ports.Session{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return ports.Session{}, errs.Wrap(err, "check context")
	}

	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return ports.Session{}, err
	}

	now := time.Now().UTC()
	session := ports.Session{
		Token:   uuid.NewString(),
		UserID:  user.ID,
		User:    user,
		Created: now,
		Expires: now.Add(ttl),
	}
	if err := s.sessions.CreateSession(ctx, &session); err != nil {
		return ports.Session{}, err
	}
	return session, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	return s.sessions.DeleteSession(ctx, token)
}

func (s *Service) GetSession(ctx context.Context, token string) (ports.Session, error) {
	if ctx == nil {
		return ports.Session{}, errors.New("context is required")
	}
	return s.sessions.GetSession(ctx, token)
}

// SaveSettings stores the caller's opaque UI settings blob on the session.
func (s *Service) SaveSettings(ctx context.Context, token string, settings string) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	return s.sessions.UpdateSessionSettings(ctx, token, settings)
}
