package tracker

import (
	"context"
	"errors"

	"gumshoe/internal/errs"
	"gumshoe/internal/ports"
)

func (s *Service) GetIssue(ctx context.Context, issueKey string) (ports.Issue, error) {
	if ctx == nil {
		return ports.Issue{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return ports.Issue{}, errs.Wrap(err, "check context")
	}
	return s.issues.GetIssueByKey(ctx, issueKey)
}

func (s *Service) ListProjects(ctx context.Context) ([]ports.Project, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	return s.projects.ListProjects(ctx)
}

func (s *Service) GetProject(ctx context.Context, id int64) (ports.Project, error) {
	if ctx == nil {
		return ports.Project{}, errors.New("context is required")
	}
	return s.projects.GetProject(ctx, id)
}

func (s *Service) GetComponent(ctx context.Context, id int64) (ports.Component, error) {
	if ctx == nil {
		return ports.Component{}, errors.New("context is required")
	}
	return s.projects.GetComponent(ctx, id)
}

func (s *Service) GetVersion(ctx context.Context, id int64) (ports.Version, error) {
	if ctx == nil {
		return ports.Version{}, errors.New("context is required")
	}
	return s.projects.GetVersion(ctx, id)
}

func (s *Service) ListPriorities(ctx context.Context) ([]ports.Priority, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	return s.lookups.ListPriorities(ctx)
}

func (s *Service) ListIssueTypes(ctx context.Context) ([]ports.IssueType, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	return s.lookups.ListIssueTypes(ctx)
}

func (s *Service) ListMilestones(ctx context.Context) ([]ports.Milestone, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	return s.lookups.ListMilestones(ctx)
}

func (s *Service) GetMilestone(ctx context.Context, id int64) (ports.Milestone, error) {
	if ctx == nil {
		return ports.Milestone{}, errors.New("context is required")
	}
	return s.lookups.GetMilestone(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context) ([]ports.User, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	return s.users.ListUsers(ctx)
}

func (s *Service) GetUser(ctx context.Context, id int64) (ports.User, error) {
	if ctx == nil {
		return ports.User{}, errors.New("context is required")
	}
	return s.users.GetUser(ctx, id)
}
