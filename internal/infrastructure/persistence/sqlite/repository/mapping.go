package repository

import (
	"gumshoe/internal/infrastructure/persistence/sqlite/model"
	"gumshoe/internal/ports"
)

func mapUser(row model.User) ports.User {
	return ports.User{
		ID:        row.UserID,
		Username:  row.Username,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Email:     row.Email,
		IsActive:  row.IsActive,
	}
}

func mapProject(row model.Project) ports.Project {
	return ports.Project{
		ID:          row.ProjectID,
		Name:        row.Name,
		Description: row.Description,
		IssueKey:    row.IssueKey,
	}
}

func mapComponent(row model.Component) ports.Component {
	return ports.Component{
		ID:          row.ComponentID,
		ProjectID:   row.ProjectID,
		Name:        row.Name,
		Description: row.Description,
	}
}

func mapVersion(row model.Version) ports.Version {
	return ports.Version{
		ID:          row.VersionID,
		ProjectID:   row.ProjectID,
		Name:        row.Name,
		Description: row.Description,
	}
}

func mapMilestone(row model.Milestone) ports.Milestone {
	return ports.Milestone{
		ID:          row.MilestoneID,
		Name:        row.Name,
		Description: row.Description,
	}
}

func mapPriority(row model.Priority) ports.Priority {
	return ports.Priority{
		ID:        row.PriorityID,
		Name:      row.Name,
		ShortName: row.ShortName,
		Weight:    row.Weight,
	}
}

func mapIssueType(row model.IssueType) ports.IssueType {
	return ports.IssueType{
		ID:          row.IssueTypeID,
		Name:        row.Name,
		Description: row.Description,
		ShortName:   row.ShortName,
		Icon:        row.Icon,
	}
}

func mapComment(row model.Comment, author model.User) ports.Comment {
	return ports.Comment{
		ID:          row.CommentID,
		ContentType: row.ContentType,
		ObjectID:    row.ObjectID,
		AuthorID:    row.AuthorID,
		Author:      mapUser(author),
		Created:     row.Created,
		Updated:     row.Updated,
		Text:        row.Text,
	}
}

func mapIssueScalars(row model.Issue) ports.Issue {
	return ports.Issue{
		ID:               row.IssueID,
		IssueKey:         row.IssueKey,
		Summary:          row.Summary,
		Description:      row.Description,
		StepsToReproduce: row.StepsToReproduce,
		ProjectID:        row.ProjectID,
		IssueTypeID:      row.IssueTypeID,
		PriorityID:       row.PriorityID,
		Status:           row.Status,
		Resolution:       row.Resolution,
		AssigneeID:       row.AssigneeID,
		ReporterID:       row.ReporterID,
		MilestoneID:      row.MilestoneID,
		Reported:         row.Reported,
		LastUpdated:      row.LastUpdated,
	}
}
