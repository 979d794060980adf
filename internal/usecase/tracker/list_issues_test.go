package tracker

import (
	"context"
	"errors"
	"testing"

	domaintracker "gumshoe/internal/domain/tracker"
	"gumshoe/internal/ports"
)

func TestParseOrderBy(t *testing.T) {
	order, err := ParseOrderBy([]string{"-last_updated", "priority", ""})
	if err != nil {
		t.Fatalf("ParseOrderBy() error = %v", err)
	}
	want := []ports.OrderTerm{
		{Field: "last_updated", Desc: true},
		{Field: "priority", Desc: false},
	}
	if len(order) != len(want) {
		t.Fatalf("ParseOrderBy() len = %d", len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("ParseOrderBy()[%d] = %+v, want %+v", i, order[i], want[i])
		}
	}
}

func TestParseOrderByUnknownField(t *testing.T) {
	_, err := ParseOrderBy([]string{"summary", "favourite_color"})
	var verr *domaintracker.ValidationError
	if !errors.As(err, &verr) || len(verr.Fields["order_by"]) == 0 {
		t.Fatalf("ParseOrderBy() error = %v", err)
	}
}

func TestListIssuesPageOutOfRange(t *testing.T) {
	f := newTestService(t)
	ctx := context.Background()

	if _, err := f.svc.CreateIssue(ctx, f.basePatch("only one"), f.alice); err != nil {
		t.Fatalf("CreateIssue() error = %v", err)
	}

	_, err := f.svc.ListIssues(ctx, ListIssuesInput{Page: 5, PageSize: 10})
	if !errors.Is(err, ErrInvalidPage) {
		t.Fatalf("ListIssues() error = %v", err)
	}
}

func TestListIssuesPaging(t *testing.T) {
	f := newTestService(t)
	ctx := context.Background()

	for _, summary := range []string{"a", "b", "c"} {
		if _, err := f.svc.CreateIssue(ctx, f.basePatch(summary), f.alice); err != nil {
			t.Fatalf("CreateIssue() error = %v", err)
		}
	}

	page, err := f.svc.ListIssues(ctx, ListIssuesInput{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("ListIssues() error = %v", err)
	}
	if page.Count != 3 || len(page.Items) != 1 {
		t.Fatalf("page = count %d, items %d", page.Count, len(page.Items))
	}
	if !page.HasPrev || page.HasNext {
		t.Fatalf("page flags = prev %v next %v", page.HasPrev, page.HasNext)
	}
}
