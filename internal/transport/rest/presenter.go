package rest

import (
	"fmt"

	domaintracker "gumshoe/internal/domain/tracker"
	"gumshoe/internal/ports"
)

// Presenters build snake_case payload maps; writeJSON converts the keys to
// the external camelCase convention on the way out.

func userPayload(user ports.User) map[string]any {
	return map[string]any{
		"id":         user.ID,
		"username":   user.Username,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"email":      user.Email,
	}
}

func milestonePayload(milestone ports.Milestone) map[string]any {
	return map[string]any{
		"id":          milestone.ID,
		"name":        milestone.Name,
		"description": milestone.Description,
	}
}

func componentPayload(baseURL string, component ports.Component) map[string]any {
	return map[string]any{
		"id":          component.ID,
		"url":         fmt.Sprintf("%s/rest/components/%d", baseURL, component.ID),
		"name":        component.Name,
		"description": component.Description,
	}
}

func versionPayload(baseURL string, version ports.Version) map[string]any {
	return map[string]any{
		"id":          version.ID,
		"url":         fmt.Sprintf("%s/rest/versions/%d", baseURL, version.ID),
		"name":        version.Name,
		"description": version.Description,
	}
}

func priorityPayload(priority ports.Priority) map[string]any {
	return map[string]any{
		"id":         priority.ID,
		"name":       priority.Name,
		"short_name": priority.ShortName,
		"weight":     priority.Weight,
	}
}

func projectPayload(baseURL string, project ports.Project, priorities []ports.Priority, issueTypes []ports.IssueType) map[string]any {
	components := make([]any, 0, len(project.Components))
	for _, component := range project.Components {
		components = append(components, componentPayload(baseURL, component))
	}
	versions := make([]any, 0, len(project.Versions))
	for _, version := range project.Versions {
		versions = append(versions, versionPayload(baseURL, version))
	}
	priorityList := make([]any, 0, len(priorities))
	for _, priority := range priorities {
		priorityList = append(priorityList, priorityPayload(priority))
	}
	typeCodes := make([]any, 0, len(issueTypes))
	for _, issueType := range issueTypes {
		typeCodes = append(typeCodes, issueType.ShortName)
	}

	return map[string]any{
		"id":          project.ID,
		"url":         fmt.Sprintf("%s/rest/projects/%d/", baseURL, project.ID),
		"name":        project.Name,
		"description": project.Description,
		"issue_key":   project.IssueKey,
		"components":  components,
		"versions":    versions,
		"priorities":  priorityList,
		"issue_types": typeCodes,
		"statuses":    domaintracker.Statuses(),
		"resolutions": domaintracker.Resolutions(),
	}
}

func issuePayload(baseURL string, issue ports.Issue) map[string]any {
	componentIDs := make([]any, 0, len(issue.Components))
	for _, component := range issue.Components {
		componentIDs = append(componentIDs, component.ID)
	}
	affectsIDs := make([]any, 0, len(issue.AffectsVersions))
	for _, version := range issue.AffectsVersions {
		affectsIDs = append(affectsIDs, version.ID)
	}
	fixIDs := make([]any, 0, len(issue.FixVersions))
	for _, version := range issue.FixVersions {
		fixIDs = append(fixIDs, version.ID)
	}

	payload := map[string]any{
		"id":                 issue.ID,
		"url":                fmt.Sprintf("%s/rest/issues/%s/", baseURL, issue.IssueKey),
		"summary":            issue.Summary,
		"description":        issue.Description,
		"steps_to_reproduce": issue.StepsToReproduce,
		"issue_key":          issue.IssueKey,
		"components":         componentIDs,
		"affects_versions":   affectsIDs,
		"fix_versions":       fixIDs,
		"project":            issue.ProjectID,
		"status":             issue.Status,
		"resolution":         issue.Resolution,
		"issue_type":         issue.IssueType.ShortName,
		"priority":           issue.Priority.ShortName,
		"reported":           epochMillis(issue.Reported),
		"last_updated":       epochMillis(issue.LastUpdated),
		"comments_url":       fmt.Sprintf("%s/rest/issues/%s/comments/", baseURL, issue.IssueKey),
	}

	if issue.Assignee != nil {
		payload["assignee"] = userPayload(*issue.Assignee)
	} else {
		payload["assignee"] = nil
	}
	if issue.Reporter != nil {
		payload["reporter"] = userPayload(*issue.Reporter)
	} else {
		payload["reporter"] = nil
	}
	if issue.Milestone != nil {
		payload["milestone"] = milestonePayload(*issue.Milestone)
	} else {
		payload["milestone"] = nil
	}

	return payload
}

func commentPayload(baseURL string, comment ports.Comment) map[string]any {
	return map[string]any{
		"id":      comment.ID,
		"url":     fmt.Sprintf("%s/rest/comments/%d", baseURL, comment.ID),
		"author":  userPayload(comment.Author),
		"created": epochMillis(comment.Created),
		"updated": epochMillis(comment.Updated),
		"text":    comment.Text,
	}
}
