package model

import "time"

type Issue struct {
	IssueID          int64  `gorm:"column:issue_id;primaryKey;autoIncrement"`
	IssueKey         string `gorm:"column:issue_key;type:text;not null;uniqueIndex:ux_issues_issue_key"`
	Summary          string `gorm:"column:summary;type:text;not null"`
	Description      string `gorm:"column:description;type:text;not null;default:''"`
	StepsToReproduce string `gorm:"column:steps_to_reproduce;type:text;not null;default:''"`

	ProjectID   int64 `gorm:"column:project_id;not null;index:ix_issues_project"`
	IssueTypeID int64 `gorm:"column:issue_type_id;not null"`
	PriorityID  int64 `gorm:"column:priority_id;not null"`

	Status     string `gorm:"column:status;type:text;not null;default:'OPEN'"`
	Resolution string `gorm:"column:resolution;type:text;not null;default:'UNRESOLVED'"`

	AssigneeID  *int64 `gorm:"column:assignee_id"`
	ReporterID  *int64 `gorm:"column:reporter_id"`
	MilestoneID *int64 `gorm:"column:milestone_id"`

	Reported    time.Time `gorm:"column:reported;not null"`
	LastUpdated time.Time `gorm:"column:last_updated;not null;index:ix_issues_last_updated"`
}

func (Issue) TableName() string {
	return "issues"
}

type IssueComponent struct {
	IssueID     int64 `gorm:"column:issue_id;not null;primaryKey"`
	ComponentID int64 `gorm:"column:component_id;not null;primaryKey"`
}

func (IssueComponent) TableName() string {
	return "issue_components"
}

type IssueAffectsVersion struct {
	IssueID   int64 `gorm:"column:issue_id;not null;primaryKey"`
	VersionID int64 `gorm:"column:version_id;not null;primaryKey"`
}

func (IssueAffectsVersion) TableName() string {
	return "issue_affects_versions"
}

type IssueFixVersion struct {
	IssueID   int64 `gorm:"column:issue_id;not null;primaryKey"`
	VersionID int64 `gorm:"column:version_id;not null;primaryKey"`
}

func (IssueFixVersion) TableName() string {
	return "issue_fix_versions"
}
