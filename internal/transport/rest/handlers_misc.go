package rest

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"gumshoe/internal/ports"
)

func (h *Handler) apiRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"issues":     h.baseURL + "/rest/issues/",
		"projects":   h.baseURL + "/rest/projects/",
		"users":      h.baseURL + "/rest/users/",
		"milestones": h.baseURL + "/rest/milestones/",
		"settings":   h.baseURL + "/rest/settings/",
		"pages":      h.baseURL + "/rest/pages/",
	})
}

// pages lists the UI entry points the single-page client navigates to.
func (h *Handler) pages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"issues":   h.baseURL + "/issues/",
		"projects": h.baseURL + "/projects/",
		"login":    h.baseURL + "/login/",
	})
}

func pathID(r *http.Request, name string, notFound error) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, notFound
	}
	return id, nil
}

func (h *Handler) listProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.svc.ListProjects(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	priorities, issueTypes, err := h.lookupSets(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	payload := make([]any, 0, len(projects))
	for _, project := range projects {
		payload = append(payload, projectPayload(h.baseURL, project, priorities, issueTypes))
	}
	writeJSON(w, r, http.StatusOK, payload)
}

func (h *Handler) getProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "projectID", ports.ErrProjectNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}
	project, err := h.svc.GetProject(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	priorities, issueTypes, err := h.lookupSets(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, projectPayload(h.baseURL, project, priorities, issueTypes))
}

// lookupSets loads the priority and issue type tables shared by every
// project representation.
func (h *Handler) lookupSets(r *http.Request) ([]ports.Priority, []ports.IssueType, error) {
	priorities, err := h.svc.ListPriorities(r.Context())
	if err != nil {
		return nil, nil, err
	}
	issueTypes, err := h.svc.ListIssueTypes(r.Context())
	if err != nil {
		return nil, nil, err
	}
	return priorities, issueTypes, nil
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	payload := make([]any, 0, len(users))
	for _, user := range users {
		payload = append(payload, userPayload(user))
	}
	writeJSON(w, r, http.StatusOK, payload)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userID", ports.ErrUserNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, userPayload(user))
}

func (h *Handler) listMilestones(w http.ResponseWriter, r *http.Request) {
	milestones, err := h.svc.ListMilestones(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	payload := make([]any, 0, len(milestones))
	for _, milestone := range milestones {
		payload = append(payload, milestonePayload(milestone))
	}
	writeJSON(w, r, http.StatusOK, payload)
}

func (h *Handler) getMilestone(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "milestoneID", ports.ErrMilestoneNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}
	milestone, err := h.svc.GetMilestone(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, milestonePayload(milestone))
}

func (h *Handler) getComponent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "componentID", ports.ErrComponentNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}
	component, err := h.svc.GetComponent(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, componentPayload(h.baseURL, component))
}

func (h *Handler) getVersion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "versionID", ports.ErrVersionNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}
	version, err := h.svc.GetVersion(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, versionPayload(h.baseURL, version))
}
