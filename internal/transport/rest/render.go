package rest

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	domaintracker "gumshoe/internal/domain/tracker"
	"gumshoe/internal/bootstrap/logging"
	"gumshoe/internal/errs"
	"gumshoe/internal/ports"
	"gumshoe/internal/usecase/tracker"
)

const maxBodyBytes = 1 << 20

// writeJSON renders payload (snake_case keys) through the camelCase key
// transform.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	body, err := json.Marshal(TransformKeys(payload, SnakeToCamel))
	if err != nil {
		logging.Error(r.Context(), "encode response failed", slog.Any("err", errs.Loggable(err)))
		http.Error(w, `{"detail":"internal error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// parseBody decodes the request JSON and rewrites external camelCase keys
// to internal snake_case.
func parseBody(r *http.Request) (map[string]any, error) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, errs.Wrap(err, "read request body")
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, errs.Wrap(err, "decode request body")
	}

	payload, ok := TransformKeys(decoded, CamelToSnake).(map[string]any)
	if !ok {
		return nil, errors.New("request body must be a JSON object")
	}
	return payload, nil
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domaintracker.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, r, http.StatusBadRequest, verr.Fields)
	case isNotFound(err):
		writeJSON(w, r, http.StatusNotFound, map[string]any{"detail": "Not found."})
	case errors.Is(err, tracker.ErrInvalidCredentials):
		writeJSON(w, r, http.StatusForbidden, map[string]any{"detail": "Invalid login credentials"})
	default:
		logging.Error(r.Context(), "request failed", slog.Any("err", errs.Loggable(err)))
		writeJSON(w, r, http.StatusInternalServerError, map[string]any{"detail": "internal error"})
	}
}

func isNotFound(err error) bool {
	for _, sentinel := range []error{
		ports.ErrIssueNotFound,
		ports.ErrProjectNotFound,
		ports.ErrUserNotFound,
		ports.ErrCommentNotFound,
		ports.ErrMilestoneNotFound,
		ports.ErrComponentNotFound,
		ports.ErrVersionNotFound,
		tracker.ErrInvalidPage,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
