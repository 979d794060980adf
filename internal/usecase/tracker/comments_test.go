package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"gumshoe/internal/ports"
)

func TestCreateCommentStampsBothTimestamps(t *testing.T) {
	f := newTestService(t)
	ctx := context.Background()

	issue, err := f.svc.CreateIssue(ctx, f.basePatch("commented"), f.alice)
	if err != nil {
		t.Fatalf("CreateIssue() error = %v", err)
	}

	comment, err := f.svc.CreateComment(ctx, issue.IssueKey, "first!", f.bob)
	if err != nil {
		t.Fatalf("CreateComment() error = %v", err)
	}

	if !comment.Created.Equal(comment.Updated) {
		t.Fatalf("created %v != updated %v", comment.Created, comment.Updated)
	}
	if comment.Created.Before(issue.Reported) {
		t.Fatalf("comment created %v before issue reported %v", comment.Created, issue.Reported)
	}
	if comment.AuthorID != f.bob.ID {
		t.Fatalf("author = %d", comment.AuthorID)
	}
}

func TestUpdateCommentKeepsAuthorAndCreated(t *testing.T) {
	f := newTestService(t)
	ctx := context.Background()

	issue, err := f.svc.CreateIssue(ctx, f.basePatch("commented"), f.alice)
	if err != nil {
		t.Fatalf("CreateIssue() error = %v", err)
	}
	comment, err := f.svc.CreateComment(ctx, issue.IssueKey, "draft", f.bob)
	if err != nil {
		t.Fatalf("CreateComment() error = %v", err)
	}

	time.Sleep(5 * time.Millisecond)
	updated, err := f.svc.UpdateComment(ctx, comment.ID, "final")
	if err != nil {
		t.Fatalf("UpdateComment() error = %v", err)
	}

	if updated.Text != "final" {
		t.Fatalf("text = %q", updated.Text)
	}
	if updated.AuthorID != f.bob.ID {
		t.Fatalf("author changed: %d", updated.AuthorID)
	}
	if !updated.Created.Equal(comment.Created) {
		t.Fatalf("created changed: %v -> %v", comment.Created, updated.Created)
	}

	reloaded, err := f.svc.ListComments(ctx, issue.IssueKey)
	if err != nil {
		t.Fatalf("ListComments() error = %v", err)
	}
	if len(reloaded) != 1 || !reloaded[0].Updated.After(reloaded[0].Created) {
		t.Fatalf("updated not advanced: %v", reloaded)
	}
}

func TestListCommentsUnknownIssue(t *testing.T) {
	f := newTestService(t)

	_, err := f.svc.ListComments(context.Background(), "GUM-404")
	if !errors.Is(err, ports.ErrIssueNotFound) {
		t.Fatalf("ListComments() error = %v", err)
	}
}

func TestListCommentsOldestFirst(t *testing.T) {
	f := newTestService(t)
	ctx := context.Background()

	issue, err := f.svc.CreateIssue(ctx, f.basePatch("ordered"), f.alice)
	if err != nil {
		t.Fatalf("CreateIssue() error = %v", err)
	}
	for _, text := range []string{"one", "two", "three"} {
		if _, err := f.svc.CreateComment(ctx, issue.IssueKey, text, f.alice); err != nil {
			t.Fatalf("CreateComment() error = %v", err)
		}
	}

	comments, err := f.svc.ListComments(ctx, issue.IssueKey)
	if err != nil {
		t.Fatalf("ListComments() error = %v", err)
	}
	if len(comments) != 3 || comments[0].Text != "one" || comments[2].Text != "three" {
		t.Fatalf("comments = %v", comments)
	}
}
