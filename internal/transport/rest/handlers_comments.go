package rest

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	domaintracker "gumshoe/internal/domain/tracker"
	"gumshoe/internal/ports"
)

func commentTextFromPayload(payload map[string]any) (string, *domaintracker.ValidationError) {
	verr := domaintracker.NewValidationError()
	text := optString(payload, "text", verr)
	if text == nil || *text == "" {
		verr.Add("text", "this field is required")
	}
	if verr.HasErrors() {
		return "", verr
	}
	return *text, nil
}

func (h *Handler) listComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.svc.ListComments(r.Context(), chi.URLParam(r, "issueKey"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	payload := make([]any, 0, len(comments))
	for _, comment := range comments {
		payload = append(payload, commentPayload(h.baseURL, comment))
	}
	writeJSON(w, r, http.StatusOK, payload)
}

func (h *Handler) createComment(w http.ResponseWriter, r *http.Request) {
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

	text, verr := commentTextFromPayload(payload)
	if verr != nil {
		writeError(w, r, verr)
		return
	}

	comment, err := h.svc.CreateComment(r.Context(), chi.URLParam(r, "issueKey"), text, session.User)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, commentPayload(h.baseURL, comment))
}

func (h *Handler) updateComment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "commentID"), 10, 64)
	if err != nil {
		writeError(w, r, ports.ErrCommentNotFound)
		return
	}

	payload, err := parseBody(r)
	if err != nil {
		verr := domaintracker.NewValidationError()
		verr.Add("body", "expected a JSON object")
		writeError(w, r, verr)
		return
	}

	text, verr := commentTextFromPayload(payload)
	if verr != nil {
		writeError(w, r, verr)
		return
	}

	comment, err := h.svc.UpdateComment(r.Context(), id, text)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, commentPayload(h.baseURL, comment))
}
