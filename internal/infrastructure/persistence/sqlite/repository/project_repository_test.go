package repository

import (
	"context"
	"errors"
	"testing"

	"gumshoe/internal/infrastructure/persistence/sqlite/model"
	"gumshoe/internal/ports"
)

func TestReserveIssueKeySequence(t *testing.T) {
	db := setupDB(t)
	f := seedTracker(t, db)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	first, err := repo.ReserveIssueKey(ctx, f.project.ProjectID)
	if err != nil {
		t.Fatalf("ReserveIssueKey() error = %v", err)
	}
	second, err := repo.ReserveIssueKey(ctx, f.project.ProjectID)
	if err != nil {
		t.Fatalf("ReserveIssueKey() error = %v", err)
	}

	if first != "GUM-1" || second != "GUM-2" {
		t.Fatalf("reserved keys = %s, %s", first, second)
	}

	if _, err := repo.ReserveIssueKey(ctx, 9999); !errors.Is(err, ports.ErrProjectNotFound) {
		t.Fatalf("ReserveIssueKey(unknown) error = %v", err)
	}
}

func TestCreateProjectWithOwnedSets(t *testing.T) {
	db := setupDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	project := ports.Project{
		Name:     "Billing",
		IssueKey: "BILL",
		Components: []ports.Component{
			{Name: "invoices"},
			{Name: "payments"},
		},
		Versions: []ports.Version{
			{Name: "0.1"},
		},
	}
	if err := repo.CreateProject(ctx, &project); err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}

	loaded, err := repo.GetProject(ctx, project.ID)
	if err != nil {
		t.Fatalf("GetProject() error = %v", err)
	}
	if len(loaded.Components) != 2 || len(loaded.Versions) != 1 {
		t.Fatalf("owned sets = %d components, %d versions", len(loaded.Components), len(loaded.Versions))
	}
	for _, component := range loaded.Components {
		if component.ProjectID != project.ID {
			t.Fatalf("component project_id = %d", component.ProjectID)
		}
	}
}

func TestDeleteProjectReferencedByIssue(t *testing.T) {
	db := setupDB(t)
	f := seedTracker(t, db)
	issues := NewIssueRepository(db)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	createTestIssue(t, issues, f, "GUM-1", "blocks delete", "OPEN", f.major.PriorityID, nil)

	if err := repo.DeleteProject(ctx, f.project.ProjectID); !errors.Is(err, ports.ErrReferenced) {
		t.Fatalf("DeleteProject() error = %v", err)
	}
}

func TestDeleteProjectRemovesOwnedSets(t *testing.T) {
	db := setupDB(t)
	f := seedTracker(t, db)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	if err := repo.DeleteProject(ctx, f.project.ProjectID); err != nil {
		t.Fatalf("DeleteProject() error = %v", err)
	}

	var versions int64
	if err := db.Model(&model.Version{}).Where("project_id = ?", f.project.ProjectID).Count(&versions).Error; err != nil {
		t.Fatalf("count versions: %v", err)
	}
	if versions != 0 {
		t.Fatalf("versions left behind = %d", versions)
	}
}

func TestTakenIssueKeys(t *testing.T) {
	db := setupDB(t)
	f := seedTracker(t, db)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	taken, err := repo.TakenIssueKeys(ctx)
	if err != nil {
		t.Fatalf("TakenIssueKeys() error = %v", err)
	}
	if _, ok := taken[f.project.IssueKey]; !ok {
		t.Fatalf("taken keys missing %s: %v", f.project.IssueKey, taken)
	}
}
