package tracker

import (
	"context"
	"errors"
	"strings"

	domaintracker "gumshoe/internal/domain/tracker"
	"gumshoe/internal/errs"
	"gumshoe/internal/ports"
)

// orderableFields are the internal issue field names accepted in an
// ordering specification.
var orderableFields = map[string]struct{}{
	"id":           {},
	"issue_key":    {},
	"summary":      {},
	"status":       {},
	"resolution":   {},
	"reported":     {},
	"last_updated": {},
	"priority":     {},
	"project":      {},
}

type ListIssuesInput struct {
	Filter ports.IssueFilter
	// OrderBy holds internal field names, each optionally prefixed with
	// "-" for descending order.
	OrderBy []string
	// Page is 1-based; 0 means first page. PageSize <= 0 disables paging.
	Page     int
	PageSize int
}

type IssuePage struct {
	Count    int64
	Page     int
	PageSize int
	HasNext  bool
	HasPrev  bool
	Items    []ports.Issue
}

func (s *Service) ListIssues(ctx context.Context, input ListIssuesInput) (IssuePage, error) {
	if ctx == nil {
		return IssuePage{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return IssuePage{}, errs.Wrap(err, "check context")
	}

	order, err := ParseOrderBy(input.OrderBy)
	if err != nil {
		return IssuePage{}, err
	}

	page := input.Page
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return IssuePage{}, ErrInvalidPage
	}

	limit := input.PageSize
	offset := 0
	if limit > 0 {
		offset = (page - 1) * limit
	}

	items, total, err := s.issues.ListIssues(ctx, input.Filter, order, limit, offset)
	if err != nil {
		return IssuePage{}, err
	}

	if limit > 0 && page > 1 && int64(offset) >= total {
		return IssuePage{}, ErrInvalidPage
	}

	result := IssuePage{
		Count:    total,
		Page:     page,
		PageSize: limit,
		Items:    items,
	}
	if limit > 0 {
		result.HasPrev = page > 1
		result.HasNext = int64(offset+len(items)) < total
	}
	return result, nil
}

// ParseOrderBy turns "-field" specs into validated order terms.
func ParseOrderBy(fields []string) ([]ports.OrderTerm, error) {
	order := make([]ports.OrderTerm, 0, len(fields))
	for _, raw := range fields {
		field := strings.TrimSpace(raw)
		if field == "" {
			continue
		}

		desc := strings.HasPrefix(field, "-")
		field = strings.TrimPrefix(field, "-")

		if _, ok := orderableFields[field]; !ok {
			verr := domaintracker.NewValidationError()
			verr.Add("order_by", "unknown field "+field)
			return nil, verr
		}
		order = append(order, ports.OrderTerm{Field: field, Desc: desc})
	}
	return order, nil
}
