package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"gumshoe/internal/ports"
)

func TestAuthenticate(t *testing.T) {
	f := newTestService(t)
	ctx := context.Background()

	user, err := f.svc.Authenticate(ctx, "alice", "hunter2")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if user.ID != f.alice.ID {
		t.Fatalf("user = %v", user)
	}

	if _, err := f.svc.Authenticate(ctx, "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Authenticate(bad password) error = %v", err)
	}
	if _, err := f.svc.Authenticate(ctx, "nobody", "hunter2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Authenticate(unknown user) error = %v", err)
	}
}

func TestLoginLogout(t *testing.T) {
	f := newTestService(t)
	ctx := context.Background()

	session, err := f.svc.Login(ctx, "alice", "hunter2", time.Hour)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if session.Token == "" || session.User.ID != f.alice.ID {
		t.Fatalf("session = %v", session)
	}

	loaded, err := f.svc.GetSession(ctx, session.Token)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if loaded.UserID != f.alice.ID {
		t.Fatalf("session user = %d", loaded.UserID)
	}

	if err := f.svc.Logout(ctx, session.Token); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, err := f.svc.GetSession(ctx, session.Token); !errors.Is(err, ports.ErrSessionNotFound) {
		t.Fatalf("GetSession(after logout) error = %v", err)
	}
}

func TestExpiredSessionRejected(t *testing.T) {
	f := newTestService(t)
	ctx := context.Background()

	session, err := f.svc.Login(ctx, "alice", "hunter2", -time.Minute)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if _, err := f.svc.GetSession(ctx, session.Token); !errors.Is(err, ports.ErrSessionNotFound) {
		t.Fatalf("GetSession(expired) error = %v", err)
	}
}

func TestSaveSettingsRoundTrip(t *testing.T) {
	f := newTestService(t)
	ctx := context.Background()

	session, err := f.svc.Login(ctx, "alice", "hunter2", time.Hour)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	blob := `{"page_size":50,"dark_mode":true}`
	if err := f.svc.SaveSettings(ctx, session.Token, blob); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}

	loaded, err := f.svc.GetSession(ctx, session.Token)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if loaded.Settings != blob {
		t.Fatalf("settings = %q", loaded.Settings)
	}
}
