package rest

import (
	"net/http"
	"strconv"
	"strings"

	domaintracker "gumshoe/internal/domain/tracker"
	"gumshoe/internal/ports"
	"gumshoe/internal/usecase/tracker"
)

// Payload readers. JSON numbers arrive as float64; ids are truncated to
// int64. A JSON null counts as absent, matching the write-only id fields.

func optString(payload map[string]any, key string, verr *domaintracker.ValidationError) *string {
	raw, present := payload[key]
	if !present || raw == nil {
		return nil
	}
	value, ok := raw.(string)
	if !ok {
		verr.Add(key, "expected a string")
		return nil
	}
	return &value
}

func optID(payload map[string]any, key string, verr *domaintracker.ValidationError) *int64 {
	raw, present := payload[key]
	if !present || raw == nil {
		return nil
	}
	value, ok := raw.(float64)
	if !ok {
		verr.Add(key, "expected an id")
		return nil
	}
	id := int64(value)
	return &id
}

func idList(payload map[string]any, key string, verr *domaintracker.ValidationError) []int64 {
	raw, present := payload[key]
	if !present || raw == nil {
		return nil
	}
	values, ok := raw.([]any)
	if !ok {
		verr.Add(key, "expected a list of ids")
		return nil
	}
	out := make([]int64, 0, len(values))
	for _, entry := range values {
		value, ok := entry.(float64)
		if !ok {
			verr.Add(key, "expected a list of ids")
			return nil
		}
		out = append(out, int64(value))
	}
	return out
}

// issuePatchFromPayload maps the normalized (snake_case) request body onto
// a patch. Type problems are collected into verr so the response carries
// every offending field at once.
func issuePatchFromPayload(payload map[string]any, verr *domaintracker.ValidationError) tracker.IssuePatch {
	return tracker.IssuePatch{
		Summary:          optString(payload, "summary", verr),
		Description:      optString(payload, "description", verr),
		StepsToReproduce: optString(payload, "steps_to_reproduce", verr),
		ProjectID:        optID(payload, "project", verr),
		IssueType:        optString(payload, "issue_type", verr),
		Priority:         optString(payload, "priority", verr),
		Status:           optString(payload, "status", verr),
		Resolution:       optString(payload, "resolution", verr),
		AssigneeID:       optID(payload, "assignee_id", verr),
		MilestoneID:      optID(payload, "milestone_id", verr),
		Components:       idList(payload, "components", verr),
		AffectsVersions:  idList(payload, "affects_versions", verr),
		FixVersions:      idList(payload, "fix_versions", verr),
	}
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseRefFilter reads a comma-separated id list; the reserved value -1
// becomes the typed "unset" branch instead of a membership id.
func parseRefFilter(raw, field string, verr *domaintracker.ValidationError) ports.RefFilter {
	var filter ports.RefFilter
	for _, part := range splitParam(raw) {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			verr.Add(field, "expected an id list")
			return ports.RefFilter{}
		}
		if id == -1 {
			filter.IncludeUnset = true
			continue
		}
		filter.IDs = append(filter.IDs, id)
	}
	return filter
}

// issueFilterFromQuery reads the recognized list filters from the request
// query, including the ordering specification (external camelCase field
// names, "-" prefix for descending).
func issueFilterFromQuery(r *http.Request) (ports.IssueFilter, []string, int, error) {
	verr := domaintracker.NewValidationError()
	query := r.URL.Query()

	filter := ports.IssueFilter{
		ProjectKeys:     splitParam(query.Get("projects")),
		Statuses:        splitParam(query.Get("statuses")),
		FixVersions:     parseRefFilter(query.Get("fixVersions"), "fix_versions", verr),
		AffectsVersions: parseRefFilter(query.Get("affectsVersions"), "affects_versions", verr),
		Assignees:       parseRefFilter(query.Get("assignees"), "assignees", verr),
		Milestones:      parseRefFilter(query.Get("milestones"), "milestones", verr),
		Terms:           strings.TrimSpace(query.Get("terms")),
	}

	orderBy := make([]string, 0, 4)
	for _, field := range splitParam(query.Get("orderBy")) {
		desc := strings.HasPrefix(field, "-")
		name := CamelToSnake(strings.TrimPrefix(field, "-"))
		if desc {
			name = "-" + name
		}
		orderBy = append(orderBy, name)
	}

	page := 1
	if rawPage := query.Get("page"); rawPage != "" {
		parsed, err := strconv.Atoi(rawPage)
		if err != nil || parsed < 1 {
			return ports.IssueFilter{}, nil, 0, tracker.ErrInvalidPage
		}
		page = parsed
	}

	if verr.HasErrors() {
		return ports.IssueFilter{}, nil, 0, verr
	}
	return filter, orderBy, page, nil
}
