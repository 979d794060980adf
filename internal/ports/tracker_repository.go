package ports

import (
	"context"
	"errors"
)

var (
	ErrIssueNotFound     = errors.New("issue not found")
	ErrProjectNotFound   = errors.New("project not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrCommentNotFound   = errors.New("comment not found")
	ErrMilestoneNotFound = errors.New("milestone not found")
	ErrComponentNotFound = errors.New("component not found")
	ErrVersionNotFound   = errors.New("version not found")
	ErrPriorityNotFound  = errors.New("priority not found")
	ErrIssueTypeNotFound = errors.New("issue type not found")
	ErrSessionNotFound   = errors.New("session not found")

	// ErrReferenced guards deletes of rows still referenced by an issue.
	ErrReferenced = errors.New("entity is still referenced by issues")
)

type IssueRepository interface {
	// ListIssues applies filter, ordering and paging; total is the match
	// count before paging. limit <= 0 disables paging.
	ListIssues(ctx context.Context, filter IssueFilter, order []OrderTerm, limit, offset int) (items []Issue, total int64, err error)
	GetIssueByKey(ctx context.Context, issueKey string) (Issue, error)

	// CreateIssue persists a new issue with its already-reserved issue key
	// and stamps reported/last_updated.
	CreateIssue(ctx context.Context, issue *Issue) error
	// SaveIssue persists scalar fields of an existing issue and advances
	// last_updated.
	SaveIssue(ctx context.Context, issue *Issue) error

	// Replace* swap a many-to-many relation set and advance the issue's
	// last_updated in the same call path.
	ReplaceComponents(ctx context.Context, issueID int64, componentIDs []int64) error
	ReplaceAffectsVersions(ctx context.Context, issueID int64, versionIDs []int64) error
	ReplaceFixVersions(ctx context.Context, issueID int64, versionIDs []int64) error
}

type ProjectRepository interface {
	ListProjects(ctx context.Context) ([]Project, error)
	GetProject(ctx context.Context, id int64) (Project, error)
	CreateProject(ctx context.Context, project *Project) error
	DeleteProject(ctx context.Context, id int64) error
	// TakenIssueKeys returns every assigned project key prefix.
	TakenIssueKeys(ctx context.Context) (map[string]struct{}, error)
	// ReserveIssueKey atomically increments the project's issue sequence
	// and returns the formatted key. Call inside the creating transaction.
	ReserveIssueKey(ctx context.Context, projectID int64) (string, error)

	GetComponent(ctx context.Context, id int64) (Component, error)
	GetVersion(ctx context.Context, id int64) (Version, error)
}

type LookupRepository interface {
	ListPriorities(ctx context.Context) ([]Priority, error)
	GetPriorityByShortName(ctx context.Context, shortName string) (Priority, error)
	ListIssueTypes(ctx context.Context) ([]IssueType, error)
	GetIssueTypeByShortName(ctx context.Context, shortName string) (IssueType, error)
	ListMilestones(ctx context.Context) ([]Milestone, error)
	GetMilestone(ctx context.Context, id int64) (Milestone, error)
	DeletePriority(ctx context.Context, id int64) error
	DeleteIssueType(ctx context.Context, id int64) error
	DeleteMilestone(ctx context.Context, id int64) error
}

type UserRepository interface {
	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, id int64) (User, error)
	// GetCredentials returns the user and stored password hash for an
	// active username.
	GetCredentials(ctx context.Context, username string) (User, string, error)
	CreateUser(ctx context.Context, user *User, passwordHash string) error
	// DeleteUser clears assignee references and refuses while the user is
	// still a reporter.
	DeleteUser(ctx context.Context, id int64) error
}

type CommentRepository interface {
	ListIssueComments(ctx context.Context, issueID int64) ([]Comment, error)
	GetComment(ctx context.Context, id int64) (Comment, error)
	// CreateComment stamps created and updated with the same instant.
	CreateComment(ctx context.Context, comment *Comment) error
	// SaveComment persists text changes and advances updated.
	SaveComment(ctx context.Context, comment *Comment) error
}

type SessionRepository interface {
	CreateSession(ctx context.Context, session *Session) error
	// GetSession returns an unexpired session with its user loaded.
	GetSession(ctx context.Context, token string) (Session, error)
	DeleteSession(ctx context.Context, token string) error
	UpdateSessionSettings(ctx context.Context, token string, settings string) error
}
