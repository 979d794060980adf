package ports

import "time"

type User struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
	Email     string
	IsActive  bool
}

type Project struct {
	ID          int64
	Name        string
	Description string
	IssueKey    string
	Components  []Component
	Versions    []Version
}

type Component struct {
	ID          int64
	ProjectID   int64
	Name        string
	Description string
}

type Version struct {
	ID          int64
	ProjectID   int64
	Name        string
	Description string
}

type Milestone struct {
	ID          int64
	Name        string
	Description string
}

type Priority struct {
	ID        int64
	Name      string
	ShortName string
	Weight    int
}

type IssueType struct {
	ID          int64
	Name        string
	Description string
	ShortName   string
	Icon        string
}

type Issue struct {
	ID               int64
	IssueKey         string
	Summary          string
	Description      string
	StepsToReproduce string

	ProjectID   int64
	Project     Project
	IssueTypeID int64
	IssueType   IssueType
	PriorityID  int64
	Priority    Priority

	Status     string
	Resolution string

	AssigneeID  *int64
	Assignee    *User
	ReporterID  *int64
	Reporter    *User
	MilestoneID *int64
	Milestone   *Milestone

	Reported    time.Time
	LastUpdated time.Time

	Components      []Component
	AffectsVersions []Version
	FixVersions     []Version
}

// CommentContentIssue is the only commentable content type today. The
// column stays generic so another entity can become commentable without a
// schema change.
const CommentContentIssue = "issue"

type Comment struct {
	ID          int64
	ContentType string
	ObjectID    int64
	AuthorID    int64
	Author      User
	Created     time.Time
	Updated     time.Time
	Text        string
}

type Session struct {
	Token    string
	UserID   int64
	User     User
	Settings string
	Created  time.Time
	Expires  time.Time
}
