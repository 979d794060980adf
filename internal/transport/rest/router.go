package rest

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"gumshoe/internal/bootstrap/config"
	"gumshoe/internal/usecase/tracker"
)

// Handler carries the service and the server-level knobs the responses
// depend on (absolute URLs, page size, session cookie).
type Handler struct {
	svc        *tracker.Service
	baseURL    string
	pageSize   int
	cookieName string
	sessionTTL time.Duration
}

func NewHandler(svc *tracker.Service, cfg config.ServerConfig) *Handler {
	return &Handler{
		svc:        svc,
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		pageSize:   cfg.PageSize,
		cookieName: cfg.SessionCookie,
		sessionTTL: cfg.SessionTTL,
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Post("/login/", h.login)
	r.Post("/logout/", h.logout)

	r.Route("/rest", func(r chi.Router) {
		r.Use(h.requireSession)

		r.Get("/", h.apiRoot)
		r.Get("/pages/", h.pages)

		r.Get("/settings/", h.getSettings)
		r.Put("/settings/", h.putSettings)

		r.Get("/issues/", h.listIssues)
		r.Post("/issues/", h.createIssue)
		r.Get("/issues/{issueKey}/", h.getIssue)
		r.Put("/issues/{issueKey}/", h.updateIssue)
		r.Get("/issues/{issueKey}/comments/", h.listComments)
		r.Post("/issues/{issueKey}/comments/", h.createComment)
		r.Put("/comments/{commentID}", h.updateComment)

		r.Get("/projects/", h.listProjects)
		r.Get("/projects/{projectID}/", h.getProject)
		r.Get("/users/", h.listUsers)
		r.Get("/users/{userID}/", h.getUser)
		r.Get("/milestones/", h.listMilestones)
		r.Get("/milestones/{milestoneID}/", h.getMilestone)
		r.Get("/components/{componentID}", h.getComponent)
		r.Get("/versions/{versionID}", h.getVersion)
	})

	return r
}
