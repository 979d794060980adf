package tracker

import (
	"context"
	"testing"
)

func TestCreateProjectDerivesKey(t *testing.T) {
	f := newTestService(t)
	ctx := context.Background()

	project, err := f.svc.CreateProject(ctx, CreateProjectInput{Name: "Sample App"})
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}
	if project.IssueKey != "SAMPLE" {
		t.Fatalf("issue key = %s", project.IssueKey)
	}
}

func TestCreateProjectFallsBackOnCollision(t *testing.T) {
	f := newTestService(t)
	ctx := context.Background()

	if _, err := f.svc.CreateProject(ctx, CreateProjectInput{Name: "Sample App"}); err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}

	// "SAMPLE" is taken, so the acronym candidate wins.
	project, err := f.svc.CreateProject(ctx, CreateProjectInput{Name: "Sample Thing"})
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}
	if project.IssueKey != "ST" {
		t.Fatalf("issue key = %s", project.IssueKey)
	}
}

func TestCreateProjectKeyOverrideCollision(t *testing.T) {
	f := newTestService(t)
	ctx := context.Background()

	if _, err := f.svc.CreateProject(ctx, CreateProjectInput{Name: "Clone", KeyOverride: "GUM"}); err == nil {
		t.Fatal("CreateProject() with taken override succeeded")
	}
}
