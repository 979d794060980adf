package tracker

import (
	"context"
	"path/filepath"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"gumshoe/internal/infrastructure/persistence/sqlite/model"
	"gumshoe/internal/infrastructure/persistence/sqlite/repository"
	"gumshoe/internal/infrastructure/persistence/sqlite/uow"
	"gumshoe/internal/ports"
)

type serviceFixture struct {
	svc     *Service
	db      *gorm.DB
	project ports.Project
	alice   ports.User
	bob     ports.User
}

func newTestService(t *testing.T) serviceFixture {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "tracker.sqlite")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	if err := db.AutoMigrate(
		&model.User{},
		&model.Session{},
		&model.Project{},
		&model.Component{},
		&model.Version{},
		&model.Milestone{},
		&model.Priority{},
		&model.IssueType{},
		&model.Issue{},
		&model.IssueComponent{},
		&model.IssueAffectsVersion{},
		&model.IssueFixVersion{},
		&model.Comment{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	for _, row := range []any{
		&model.Priority{Name: "Blocker", ShortName: "BLK", Weight: 100},
		&model.Priority{Name: "Major", ShortName: "MAJ", Weight: 50},
		&model.Priority{Name: "Minor", ShortName: "MIN", Weight: 10},
		&model.IssueType{Name: "Bug", ShortName: "BUG"},
		&model.IssueType{Name: "Feature", ShortName: "FEAT"},
		&model.Milestone{Name: "v1 launch"},
	} {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("seed lookups: %v", err)
		}
	}

	svc := NewService(Repositories{
		Issues:   repository.NewIssueRepository(db),
		Projects: repository.NewProjectRepository(db),
		Lookups:  repository.NewLookupRepository(db),
		Users:    repository.NewUserRepository(db),
		Comments: repository.NewCommentRepository(db),
		Sessions: repository.NewSessionRepository(db),
	}, uow.NewUnitOfWork(db))

	ctx := context.Background()

	project, err := svc.CreateProject(ctx, CreateProjectInput{
		Name:        "Gumshoe",
		KeyOverride: "GUM",
		Components:  []string{"ui", "api"},
		Versions:    []string{"1.0", "2.0"},
	})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	alice, err := svc.CreateUser(ctx, CreateUserInput{Username: "alice", Password: "hunter2"})
	if err != nil {
		t.Fatalf("create alice: %v", err)
	}
	bob, err := svc.CreateUser(ctx, CreateUserInput{Username: "bob", Password: "hunter2"})
	if err != nil {
		t.Fatalf("create bob: %v", err)
	}

	return serviceFixture{svc: svc, db: db, project: project, alice: alice, bob: bob}
}

func strptr(s string) *string { return &s }
func idptr(v int64) *int64    { return &v }

// basePatch returns a creatable patch against the fixture project.
func (f serviceFixture) basePatch(summary string) IssuePatch {
	return IssuePatch{
		Summary:   strptr(summary),
		ProjectID: idptr(f.project.ID),
		IssueType: strptr("BUG"),
		Priority:  strptr("MAJ"),
	}
}
