package ports

// RefFilter matches issues by a reference field. IDs is a membership test;
// IncludeUnset additionally admits issues where the reference (or relation)
// is empty, as its own OR branch on the final result set.
type RefFilter struct {
	IDs          []int64
	IncludeUnset bool
}

func (f RefFilter) Empty() bool {
	return len(f.IDs) == 0 && !f.IncludeUnset
}

// IssueFilter is the composed issue predicate. All populated fields are
// ANDed together; Terms (substring of summary or description, or exact
// issue key) is ANDed onto that; every IncludeUnset branch is ORed onto the
// combined result afterwards.
type IssueFilter struct {
	ProjectKeys     []string
	Statuses        []string
	FixVersions     RefFilter
	AffectsVersions RefFilter
	Assignees       RefFilter
	Milestones      RefFilter
	Terms           string
}

// OrderTerm is one element of an ordering specification. Field names are
// internal (snake_case) issue fields, already validated by the caller.
type OrderTerm struct {
	Field string
	Desc  bool
}
