package rest

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	domaintracker "gumshoe/internal/domain/tracker"
	"gumshoe/internal/usecase/tracker"
)

// pageURL rebuilds the request URL for another page, keeping the other
// query parameters intact. Page 1 drops the page parameter entirely.
func (h *Handler) pageURL(r *http.Request, page int) string {
	query := r.URL.Query()
	if page <= 1 {
		query.Del("page")
	} else {
		query.Set("page", strconv.Itoa(page))
	}

	url := h.baseURL + r.URL.Path
	if encoded := query.Encode(); encoded != "" {
		url += "?" + encoded
	}
	return url
}

func (h *Handler) listIssues(w http.ResponseWriter, r *http.Request) {
	filter, orderBy, page, err := issueFilterFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.svc.ListIssues(r.Context(), tracker.ListIssuesInput{
		Filter:   filter,
		OrderBy:  orderBy,
		Page:     page,
		PageSize: h.pageSize,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	results := make([]any, 0, len(result.Items))
	for _, issue := range result.Items {
		results = append(results, issuePayload(h.baseURL, issue))
	}

	payload := map[string]any{
		"count":    result.Count,
		"next":     nil,
		"previous": nil,
		"results":  results,
	}
	if result.HasNext {
		payload["next"] = h.pageURL(r, result.Page+1)
	}
	if result.HasPrev {
		payload["previous"] = h.pageURL(r, result.Page-1)
	}
	writeJSON(w, r, http.StatusOK, payload)
}

func (h *Handler) createIssue(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		h.writeUnauthenticated(w, r)
		return
	}

	payload, err := parseBody(r)
	if err != nil {
		verr := domaintracker.NewValidationError()
		verr.Add("body", "expected a JSON object")
		writeError(w, r, verr)
		return
	}

	verr := domaintracker.NewValidationError()
	patch := issuePatchFromPayload(payload, verr)
	if verr.HasErrors() {
		writeError(w, r, verr)
		return
	}

	issue, err := h.svc.CreateIssue(r.Context(), patch, session.User)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, issuePayload(h.baseURL, issue))
}

func (h *Handler) getIssue(w http.ResponseWriter, r *http.Request) {
	issue, err := h.svc.GetIssue(r.Context(), chi.URLParam(r, "issueKey"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, issuePayload(h.baseURL, issue))
}

func (h *Handler) updateIssue(w http.ResponseWriter, r *http.Request) {
	payload, err := parseBody(r)
	if err != nil {
		verr := domaintracker.NewValidationError()
		verr.Add("body", "expected a JSON object")
		writeError(w, r, verr)
		return
	}

	verr := domaintracker.NewValidationError()
	patch := issuePatchFromPayload(payload, verr)
	if verr.HasErrors() {
		writeError(w, r, verr)
		return
	}

	issue, err := h.svc.UpdateIssue(r.Context(), chi.URLParam(r, "issueKey"), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, issuePayload(h.baseURL, issue))
}
