package rest

import (
	"encoding/json"
	"net/http"
	"time"

	domaintracker "gumshoe/internal/domain/tracker"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	payload, err := parseBody(r)
	if err != nil {
		verr := domaintracker.NewValidationError()
		verr.Add("body", "expected a JSON object")
		writeError(w, r, verr)
		return
	}

	verr := domaintracker.NewValidationError()
	username := optString(payload, "username", verr)
	password := optString(payload, "password", verr)
	if username == nil {
		verr.Add("username", "this field is required")
	}
	if password == nil {
		verr.Add("password", "this field is required")
	}
	if verr.HasErrors() {
		writeError(w, r, verr)
		return
	}

	session, err := h.svc.Login(r.Context(), *username, *password, h.sessionTTL)
	if err != nil {
		writeError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.Expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.cookieName); err == nil && cookie.Value != "" {
		if err := h.svc.Logout(r.Context(), cookie.Value); err != nil {
			writeError(w, r, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusNoContent)
}

// Settings are an opaque per-session blob owned by the UI. They are stored
// in internal casing and go through the usual key transform on the way out.
// A session that has never saved anything reports itself unsaved.
func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		h.writeUnauthenticated(w, r)
		return
	}

	if session.Settings == "" {
		writeJSON(w, r, http.StatusOK, map[string]any{"unsaved": true})
		return
	}

	settings := map[string]any{}
	if err := json.Unmarshal([]byte(session.Settings), &settings); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, settings)
}

func (h *Handler) putSettings(w http.ResponseWriter, r *http.Request) {
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

	encoded, err := json.Marshal(payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.SaveSettings(r.Context(), session.Token, string(encoded)); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, payload)
}
