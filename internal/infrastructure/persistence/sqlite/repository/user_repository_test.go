package repository

import (
	"context"
	"errors"
	"testing"

	"gumshoe/internal/ports"
)

func TestDeleteUserWhileReporter(t *testing.T) {
	db := setupDB(t)
	f := seedTracker(t, db)
	issues := NewIssueRepository(db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	issue := ports.Issue{
		IssueKey:    "GUM-1",
		Summary:     "reported by alice",
		ProjectID:   f.project.ProjectID,
		IssueTypeID: f.bug.IssueTypeID,
		PriorityID:  f.major.PriorityID,
		Status:      "OPEN",
		Resolution:  "UNRESOLVED",
		ReporterID:  &f.alice.UserID,
	}
	if err := issues.CreateIssue(ctx, &issue); err != nil {
		t.Fatalf("create issue: %v", err)
	}

	if err := repo.DeleteUser(ctx, f.alice.UserID); !errors.Is(err, ports.ErrReferenced) {
		t.Fatalf("DeleteUser(reporter) error = %v", err)
	}
}

func TestDeleteUserUnassignsIssues(t *testing.T) {
	db := setupDB(t)
	f := seedTracker(t, db)
	issues := NewIssueRepository(db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	issue := createTestIssue(t, issues, f, "GUM-1", "assigned to bob", "OPEN", f.major.PriorityID, &f.bob.UserID)

	if err := repo.DeleteUser(ctx, f.bob.UserID); err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}

	reloaded, err := issues.GetIssueByKey(ctx, issue.IssueKey)
	if err != nil {
		t.Fatalf("reload issue: %v", err)
	}
	if reloaded.AssigneeID != nil {
		t.Fatalf("assignee not cleared: %v", *reloaded.AssigneeID)
	}

	if _, err := repo.GetUser(ctx, f.bob.UserID); !errors.Is(err, ports.ErrUserNotFound) {
		t.Fatalf("GetUser(deleted) error = %v", err)
	}
}

func TestGetCredentialsInactiveUser(t *testing.T) {
	db := setupDB(t)
	f := seedTracker(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	if err := db.Table("users").Where("user_id = ?", f.bob.UserID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate user: %v", err)
	}

	if _, _, err := repo.GetCredentials(ctx, "bob"); !errors.Is(err, ports.ErrUserNotFound) {
		t.Fatalf("GetCredentials(inactive) error = %v", err)
	}

	user, hash, err := repo.GetCredentials(ctx, "alice")
	if err != nil {
		t.Fatalf("GetCredentials() error = %v", err)
	}
	if user.Username != "alice" || hash == "" {
		t.Fatalf("GetCredentials() = %v, %q", user, hash)
	}
}
