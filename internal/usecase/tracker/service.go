package tracker

import (
	"errors"

	"gumshoe/internal/ports"
)

var (
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrInvalidPage        = errors.New("invalid page")
)

// Service wires the tracker usecases with the repositories and transaction
// boundary.
type Service struct {
	issues   ports.IssueRepository
	projects ports.ProjectRepository
	lookups  ports.LookupRepository
	users    ports.UserRepository
	comments ports.CommentRepository
	sessions ports.SessionRepository
	uow      ports.UnitOfWork
}

type Repositories struct {
	Issues   ports.IssueRepository
	Projects ports.ProjectRepository
	Lookups  ports.LookupRepository
	Users    ports.UserRepository
	Comments ports.CommentRepository
	Sessions ports.SessionRepository
}

func NewService(repos Repositories, uow ports.UnitOfWork) *Service {
	return &Service{
		issues:   repos.Issues,
		projects: repos.Projects,
		lookups:  repos.Lookups,
		users:    repos.Users,
		comments: repos.Comments,
		sessions: repos.Sessions,
		uow:      uow,
	}
}
