package tracker

import (
	"context"
	"errors"
	"strings"

	domaintracker "gumshoe/internal/domain/tracker"
	"gumshoe/internal/errs"
	"gumshoe/internal/ports"
)

type CreateProjectInput struct {
	Name        string
	Description string
	// KeyOverride forces the issue-key prefix instead of deriving one from
	// the name. It must not collide with an assigned prefix.
	KeyOverride string
	Components  []string
	Versions    []string
}

// CreateProject derives (or takes) the issue-key prefix and persists the
// project with its initial components and versions.
func (s *Service) CreateProject(ctx context.Context, input CreateProjectInput) (ports.Project, error) {
	if ctx == nil {
		return ports.Project{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return ports.Project{}, errs.Wrap(err, "check context")
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		verr := domaintracker.NewValidationError()
		verr.Add("name", "required")
		return ports.Project{}, verr
	}

	var project ports.Project
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		taken, err := s.projects.TakenIssueKeys(txCtx)
		if err != nil {
			return err
		}

		overrides := map[string]string{}
		if override := strings.TrimSpace(input.KeyOverride); override != "" {
			overrides[name] = override
		}

		issueKey, err := domaintracker.AssignKey(name, taken, overrides)
		if err != nil {
			return err
		}

		project = ports.Project{
			Name:        name,
			Description: input.Description,
			IssueKey:    issueKey,
		}
		for _, componentName := range input.Components {
			if componentName = strings.TrimSpace(componentName); componentName != "" {
				project.Components = append(project.Components, ports.Component{Name: componentName})
			}
		}
		for _, versionName := range input.Versions {
			if versionName = strings.TrimSpace(versionName); versionName != "" {
				project.Versions = append(project.Versions, ports.Version{Name: versionName})
			}
		}

		return s.projects.CreateProject(txCtx, &project)
	}); err != nil {
		return ports.Project{}, err
	}

	return project, nil
}
