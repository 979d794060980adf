package repository

import (
	"context"
	"errors"
	"testing"

	"gumshoe/internal/infrastructure/persistence/sqlite/model"
	"gumshoe/internal/ports"
)

func TestListPrioritiesMostSevereFirst(t *testing.T) {
	db := setupDB(t)
	seedTracker(t, db)
	repo := NewLookupRepository(db)

	items, err := repo.ListPriorities(context.Background())
	if err != nil {
		t.Fatalf("ListPriorities() error = %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("ListPriorities() len = %d", len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i].Weight > items[i-1].Weight {
			t.Fatalf("priorities not weight-ordered: %v", items)
		}
	}
}

func TestDeletePriorityReferenced(t *testing.T) {
	db := setupDB(t)
	f := seedTracker(t, db)
	issues := NewIssueRepository(db)
	repo := NewLookupRepository(db)
	ctx := context.Background()

	createTestIssue(t, issues, f, "GUM-1", "uses major", "OPEN", f.major.PriorityID, nil)

	if err := repo.DeletePriority(ctx, f.major.PriorityID); !errors.Is(err, ports.ErrReferenced) {
		t.Fatalf("DeletePriority() error = %v", err)
	}

	// Unreferenced priorities are deletable.
	if err := repo.DeletePriority(ctx, f.minor.PriorityID); err != nil {
		t.Fatalf("DeletePriority(unreferenced) error = %v", err)
	}
}

func TestDeleteIssueTypeReferenced(t *testing.T) {
	db := setupDB(t)
	f := seedTracker(t, db)
	issues := NewIssueRepository(db)
	repo := NewLookupRepository(db)
	ctx := context.Background()

	createTestIssue(t, issues, f, "GUM-1", "uses bug", "OPEN", f.major.PriorityID, nil)

	if err := repo.DeleteIssueType(ctx, f.bug.IssueTypeID); !errors.Is(err, ports.ErrReferenced) {
		t.Fatalf("DeleteIssueType() error = %v", err)
	}
}

func TestDeleteMilestoneDetachesIssues(t *testing.T) {
	db := setupDB(t)
	f := seedTracker(t, db)
	issues := NewIssueRepository(db)
	repo := NewLookupRepository(db)
	ctx := context.Background()

	milestone := model.Milestone{Name: "v1 launch"}
	if err := db.Create(&milestone).Error; err != nil {
		t.Fatalf("seed milestone: %v", err)
	}

	issue := createTestIssue(t, issues, f, "GUM-1", "scheduled", "OPEN", f.major.PriorityID, nil)
	if err := db.Model(&model.Issue{}).Where("issue_id = ?", issue.ID).
		Update("milestone_id", milestone.MilestoneID).Error; err != nil {
		t.Fatalf("attach milestone: %v", err)
	}

	if err := repo.DeleteMilestone(ctx, milestone.MilestoneID); err != nil {
		t.Fatalf("DeleteMilestone() error = %v", err)
	}

	reloaded, err := issues.GetIssueByKey(ctx, issue.IssueKey)
	if err != nil {
		t.Fatalf("reload issue: %v", err)
	}
	if reloaded.MilestoneID != nil || reloaded.Milestone != nil {
		t.Fatalf("milestone not detached: %v", reloaded.MilestoneID)
	}
}

func TestGetPriorityByShortNameNotFound(t *testing.T) {
	db := setupDB(t)
	seedTracker(t, db)
	repo := NewLookupRepository(db)

	if _, err := repo.GetPriorityByShortName(context.Background(), "NOPE"); !errors.Is(err, ports.ErrPriorityNotFound) {
		t.Fatalf("GetPriorityByShortName() error = %v", err)
	}
}
