package model

type Project struct {
	ProjectID   int64  `gorm:"column:project_id;primaryKey;autoIncrement"`
	Name        string `gorm:"column:name;type:text;not null;uniqueIndex:ux_projects_name"`
	Description string `gorm:"column:description;type:text;not null;default:''"`
	IssueKey    string `gorm:"column:issue_key;type:text;not null;uniqueIndex:ux_projects_issue_key"`
	// IssueSeq is the reserved per-project issue number sequence; it only
	// ever moves forward, inside the transaction that creates the issue.
	IssueSeq uint64 `gorm:"column:issue_seq;not null;default:0"`
}

func (Project) TableName() string {
	return "projects"
}

type Component struct {
	ComponentID int64  `gorm:"column:component_id;primaryKey;autoIncrement"`
	ProjectID   int64  `gorm:"column:project_id;not null;uniqueIndex:ux_components_project_name;index:ix_components_project"`
	Name        string `gorm:"column:name;type:text;not null;uniqueIndex:ux_components_project_name"`
	Description string `gorm:"column:description;type:text;not null;default:''"`
}

func (Component) TableName() string {
	return "components"
}

type Version struct {
	VersionID   int64  `gorm:"column:version_id;primaryKey;autoIncrement"`
	ProjectID   int64  `gorm:"column:project_id;not null;uniqueIndex:ux_versions_project_name;index:ix_versions_project"`
	Name        string `gorm:"column:name;type:text;not null;uniqueIndex:ux_versions_project_name"`
	Description string `gorm:"column:description;type:text;not null;default:''"`
}

func (Version) TableName() string {
	return "versions"
}

type Milestone struct {
	MilestoneID int64  `gorm:"column:milestone_id;primaryKey;autoIncrement"`
	Name        string `gorm:"column:name;type:text;not null"`
	Description string `gorm:"column:description;type:text;not null;default:''"`
}

func (Milestone) TableName() string {
	return "milestones"
}

type Priority struct {
	PriorityID int64  `gorm:"column:priority_id;primaryKey;autoIncrement"`
	Name       string `gorm:"column:name;type:text;not null"`
	ShortName  string `gorm:"column:short_name;type:text;not null;uniqueIndex:ux_priorities_short_name"`
	Weight     int    `gorm:"column:weight;not null"`
}

func (Priority) TableName() string {
	return "priorities"
}

type IssueType struct {
	IssueTypeID int64  `gorm:"column:issue_type_id;primaryKey;autoIncrement"`
	Name        string `gorm:"column:name;type:text;not null"`
	Description string `gorm:"column:description;type:text;not null;default:''"`
	ShortName   string `gorm:"column:short_name;type:text;not null;uniqueIndex:ux_issue_types_short_name"`
	Icon        string `gorm:"column:icon;type:text;not null;default:''"`
}

func (IssueType) TableName() string {
	return "issue_types"
}
