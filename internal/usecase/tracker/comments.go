package tracker

import (
	"context"
	"errors"

	"gumshoe/internal/errs"
	"gumshoe/internal/ports"
)

// ListComments returns an issue's comments oldest first. The issue key is
// resolved first so an unknown key surfaces as not-found rather than an
// empty list.
func (s *Service) ListComments(ctx context.Context, issueKey string) ([]ports.Comment, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}

	issue, err := s.issues.GetIssueByKey(ctx, issueKey)
	if err != nil {
		return nil, err
	}
	return s.comments.ListIssueComments(ctx, issue.ID)
}

func (s *Service) CreateComment(ctx context.Context, issueKey string, text string, actor ports.User) (ports.Comment, error) {
	if ctx == nil {
		return ports.Comment{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return ports.Comment{}, errs.Wrap(err, "check context")
	}

	issue, err := s.issues.GetIssueByKey(ctx, issueKey)
	if err != nil {
		return ports.Comment{}, err
	}

	comment := ports.Comment{
		ContentType: ports.CommentContentIssue,
		ObjectID:    issue.ID,
		AuthorID:    actor.ID,
		Author:      actor,
		Text:        text,
	}
	if err := s.comments.CreateComment(ctx, &comment); err != nil {
		return ports.Comment{}, err
	}
	return comment, nil
}

// UpdateComment replaces the comment text only; author and created stay
// untouched.
func (s *Service) UpdateComment(ctx context.Context, id int64, text string) (ports.Comment, error) {
	if ctx == nil {
		return ports.Comment{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return ports.Comment{}, errs.Wrap(err, "check context")
	}

	comment, err := s.comments.GetComment(ctx, id)
	if err != nil {
		return ports.Comment{}, err
	}

	comment.Text = text
	if err := s.comments.SaveComment(ctx, &comment); err != nil {
		return ports.Comment{}, err
	}
	return comment, nil
}
