package tracker

import (
	"context"
	"errors"

	domaintracker "gumshoe/internal/domain/tracker"
	"gumshoe/internal/errs"
	"gumshoe/internal/ports"
)

// IssuePatch is a partial external issue representation. Pointer fields
// distinguish "absent" from "present but empty"; relation lists are always
// applied as full replacements.
type IssuePatch struct {
	Summary          *string
	Description      *string
	StepsToReproduce *string

	ProjectID *int64
	IssueType *string
	Priority  *string

	Status     *string
	Resolution *string

	AssigneeID  *int64
	MilestoneID *int64

	Components      []int64
	AffectsVersions []int64
	FixVersions     []int64
}

// PendingRelations carries the staged many-to-many sets resolved against
// the owning project. They are applied after the scalar save succeeds, in
// the same transaction.
type PendingRelations struct {
	Components      []int64
	AffectsVersions []int64
	FixVersions     []int64
}

// CreateIssue resolves the patch against an empty issue and persists it.
// The reporter is forced to the acting user; the assignee defaults to the
// acting user when the patch does not name one.
func (s *Service) CreateIssue(ctx context.Context, patch IssuePatch, actor ports.User) (ports.Issue, error) {
	if ctx == nil {
		return ports.Issue{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return ports.Issue{}, errs.Wrap(err, "check context")
	}

	issue, pending, err := s.resolvePatch(ctx, patch, nil)
	if err != nil {
		return ports.Issue{}, err
	}

	issue.ReporterID = &actor.ID
	if issue.AssigneeID == nil {
		issue.AssigneeID = &actor.ID
	}

	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		issueKey, err := s.projects.ReserveIssueKey(txCtx, issue.ProjectID)
		if err != nil {
			return err
		}
		issue.IssueKey = issueKey

		if err := s.issues.CreateIssue(txCtx, &issue); err != nil {
			return err
		}
		return s.applyPendingRelations(txCtx, issue.ID, pending)
	}); err != nil {
		return ports.Issue{}, err
	}

	return s.issues.GetIssueByKey(ctx, issue.IssueKey)
}

// UpdateIssue resolves the patch onto the stored issue and persists the
// result. Reporter, issue key and timestamps stay server-derived; the
// assignee changes only when the patch names one.
func (s *Service) UpdateIssue(ctx context.Context, issueKey string, patch IssuePatch) (ports.Issue, error) {
	if ctx == nil {
		return ports.Issue{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return ports.Issue{}, errs.Wrap(err, "check context")
	}

	existing, err := s.issues.GetIssueByKey(ctx, issueKey)
	if err != nil {
		return ports.Issue{}, err
	}

	issue, pending, err := s.resolvePatch(ctx, patch, &existing)
	if err != nil {
		return ports.Issue{}, err
	}

	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.issues.SaveIssue(txCtx, &issue); err != nil {
			return err
		}
		return s.applyPendingRelations(txCtx, issue.ID, pending)
	}); err != nil {
		return ports.Issue{}, err
	}

	return s.issues.GetIssueByKey(ctx, issueKey)
}

func (s *Service) applyPendingRelations(ctx context.Context, issueID int64, pending PendingRelations) error {
	if err := s.issues.ReplaceComponents(ctx, issueID, pending.Components); err != nil {
		return err
	}
	if err := s.issues.ReplaceAffectsVersions(ctx, issueID, pending.AffectsVersions); err != nil {
		return err
	}
	return s.issues.ReplaceFixVersions(ctx, issueID, pending.FixVersions)
}

// resolvePatch merges the patch onto existing (or a fresh issue when
// existing is nil), resolving every foreign reference. Field problems are
// collected, not short-circuited, so the caller gets the full error map.
func (s *Service) resolvePatch(ctx context.Context, patch IssuePatch, existing *ports.Issue) (ports.Issue, PendingRelations, error) {
	verr := domaintracker.NewValidationError()

	var issue ports.Issue
	if existing != nil {
		issue = *existing
	} else {
		issue.Status = domaintracker.StatusOpen
		issue.Resolution = domaintracker.ResolutionUnresolved
	}

	// Text fields replace only when the incoming value is non-empty; an
	// explicit empty string keeps the stored value.
	if patch.Summary != nil && *patch.Summary != "" {
		issue.Summary = *patch.Summary
	}
	if issue.Summary == "" {
		verr.Add("summary", "required")
	}
	if patch.Description != nil && *patch.Description != "" {
		issue.Description = *patch.Description
	}
	if patch.StepsToReproduce != nil && *patch.StepsToReproduce != "" {
		issue.StepsToReproduce = *patch.StepsToReproduce
	}

	var project ports.Project
	if patch.ProjectID == nil {
		verr.Add("project", "required")
	} else {
		var err error
		project, err = s.projects.GetProject(ctx, *patch.ProjectID)
		switch {
		case errors.Is(err, ports.ErrProjectNotFound):
			verr.Add("project", "unknown project")
		case err != nil:
			return ports.Issue{}, PendingRelations{}, err
		default:
			issue.ProjectID = project.ID
			issue.Project = project
		}
	}

	if patch.IssueType == nil || *patch.IssueType == "" {
		verr.Add("issue_type", "required")
	} else {
		issueType, err := s.lookups.GetIssueTypeByShortName(ctx, *patch.IssueType)
		switch {
		case errors.Is(err, ports.ErrIssueTypeNotFound):
			verr.Add("issue_type", "unknown issue type")
		case err != nil:
			return ports.Issue{}, PendingRelations{}, err
		default:
			issue.IssueTypeID = issueType.ID
			issue.IssueType = issueType
		}
	}

	if patch.Priority == nil || *patch.Priority == "" {
		verr.Add("priority", "required")
	} else {
		priority, err := s.lookups.GetPriorityByShortName(ctx, *patch.Priority)
		switch {
		case errors.Is(err, ports.ErrPriorityNotFound):
			verr.Add("priority", "unknown priority")
		case err != nil:
			return ports.Issue{}, PendingRelations{}, err
		default:
			issue.PriorityID = priority.ID
			issue.Priority = priority
		}
	}

	if patch.Status != nil && *patch.Status != "" {
		if !domaintracker.ValidStatus(*patch.Status) {
			verr.Add("status", "invalid status")
		} else {
			issue.Status = *patch.Status
		}
	}
	if patch.Resolution != nil && *patch.Resolution != "" {
		if !domaintracker.ValidResolution(*patch.Resolution) {
			verr.Add("resolution", "invalid resolution")
		} else {
			issue.Resolution = *patch.Resolution
		}
	}

	// A missing or zero milestone id clears the milestone.
	if patch.MilestoneID != nil && *patch.MilestoneID != 0 {
		milestone, err := s.lookups.GetMilestone(ctx, *patch.MilestoneID)
		switch {
		case errors.Is(err, ports.ErrMilestoneNotFound):
			verr.Add("milestone_id", "unknown milestone")
		case err != nil:
			return ports.Issue{}, PendingRelations{}, err
		default:
			issue.MilestoneID = &milestone.ID
			issue.Milestone = &milestone
		}
	} else {
		issue.MilestoneID = nil
		issue.Milestone = nil
	}

	if patch.AssigneeID != nil {
		assignee, err := s.users.GetUser(ctx, *patch.AssigneeID)
		switch {
		case errors.Is(err, ports.ErrUserNotFound):
			verr.Add("assignee_id", "unknown user")
		case err != nil:
			return ports.Issue{}, PendingRelations{}, err
		default:
			issue.AssigneeID = &assignee.ID
			issue.Assignee = &assignee
		}
	}

	if verr.HasErrors() {
		return ports.Issue{}, PendingRelations{}, verr
	}

	// Relation ids are filtered against the owning project's own sets;
	// foreign ids drop out silently.
	pending := PendingRelations{
		Components:      filterOwnedComponentIDs(project.Components, patch.Components),
		AffectsVersions: filterOwnedVersionIDs(project.Versions, patch.AffectsVersions),
		FixVersions:     filterOwnedVersionIDs(project.Versions, patch.FixVersions),
	}
	return issue, pending, nil
}

func filterOwnedComponentIDs(owned []ports.Component, requested []int64) []int64 {
	ownedSet := make(map[int64]struct{}, len(owned))
	for _, component := range owned {
		ownedSet[component.ID] = struct{}{}
	}
	out := make([]int64, 0, len(requested))
	for _, id := range requested {
		if _, ok := ownedSet[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

func filterOwnedVersionIDs(owned []ports.Version, requested []int64) []int64 {
	ownedSet := make(map[int64]struct{}, len(owned))
	for _, version := range owned {
		ownedSet[version.ID] = struct{}{}
	}
	out := make([]int64, 0, len(requested))
	for _, id := range requested {
		if _, ok := ownedSet[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
