package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"gumshoe/internal/bootstrap/config"
	"gumshoe/internal/infrastructure/persistence/sqlite/model"
	"gumshoe/internal/infrastructure/persistence/sqlite/repository"
	"gumshoe/internal/infrastructure/persistence/sqlite/uow"
	"gumshoe/internal/ports"
	"gumshoe/internal/usecase/tracker"
)

type handlerFixture struct {
	router  http.Handler
	svc     *tracker.Service
	project ports.Project
}

func newTestHandler(t *testing.T, pageSize int) handlerFixture {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "tracker.sqlite")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	if err := db.AutoMigrate(
		&model.User{},
		&model.Session{},
		&model.Project{},
		&model.Component{},
		&model.Version{},
		&model.Milestone{},
		&model.Priority{},
		&model.IssueType{},
		&model.Issue{},
		&model.IssueComponent{},
		&model.IssueAffectsVersion{},
		&model.IssueFixVersion{},
		&model.Comment{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	for _, row := range []any{
		&model.Priority{Name: "Major", ShortName: "MAJ", Weight: 50},
		&model.IssueType{Name: "Bug", ShortName: "BUG"},
	} {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("seed lookups: %v", err)
		}
	}

	svc := tracker.NewService(tracker.Repositories{
		Issues:   repository.NewIssueRepository(db),
		Projects: repository.NewProjectRepository(db),
		Lookups:  repository.NewLookupRepository(db),
		Users:    repository.NewUserRepository(db),
		Comments: repository.NewCommentRepository(db),
		Sessions: repository.NewSessionRepository(db),
	}, uow.NewUnitOfWork(db))

	ctx := context.Background()

	project, err := svc.CreateProject(ctx, tracker.CreateProjectInput{
		Name:        "Gumshoe",
		KeyOverride: "GUM",
		Components:  []string{"ui", "api"},
		Versions:    []string{"1.0", "2.0"},
	})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if _, err := svc.CreateUser(ctx, tracker.CreateUserInput{Username: "alice", Password: "hunter2"}); err != nil {
		t.Fatalf("create user: %v", err)
	}

	handler := NewHandler(svc, config.ServerConfig{
		BaseURL:       "http://localhost:9123",
		PageSize:      pageSize,
		SessionCookie: "gumshoe_session",
		SessionTTL:    time.Hour,
	})
	return handlerFixture{router: handler.Router(), svc: svc, project: project}
}

func (f handlerFixture) do(t *testing.T, method, path string, cookie *http.Cookie, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode response body %q: %v", rec.Body.String(), err)
		}
	}
	return rec, decoded
}

func (f handlerFixture) login(t *testing.T) *http.Cookie {
	t.Helper()

	rec, body := f.do(t, http.MethodPost, "/login/", nil, map[string]any{
		"username": "alice",
		"password": "hunter2",
	})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("login status = %d, body %v", rec.Code, body)
	}
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "gumshoe_session" && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatalf("login response carried no session cookie")
	return nil
}

func TestAuthenticationRequired(t *testing.T) {
	f := newTestHandler(t, 25)

	rec, body := f.do(t, http.MethodGet, "/rest/issues/", nil, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if body["detail"] != "Authentication credentials were not provided." {
		t.Fatalf("detail = %v", body["detail"])
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	f := newTestHandler(t, 25)

	rec, body := f.do(t, http.MethodPost, "/login/", nil, map[string]any{
		"username": "alice",
		"password": "wrong",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if body["detail"] != "Invalid login credentials" {
		t.Fatalf("detail = %v", body["detail"])
	}
}

func TestLoginMissingFields(t *testing.T) {
	f := newTestHandler(t, 25)

	rec, body := f.do(t, http.MethodPost, "/login/", nil, map[string]any{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	for _, field := range []string{"username", "password"} {
		if _, ok := body[field]; !ok {
			t.Errorf("missing error entry for %q in %v", field, body)
		}
	}
}

func TestCreateIssueAndFetch(t *testing.T) {
	f := newTestHandler(t, 25)
	cookie := f.login(t)

	rec, body := f.do(t, http.MethodPost, "/rest/issues/", cookie, map[string]any{
		"summary":   "Crash on save",
		"project":   f.project.ID,
		"issueType": "BUG",
		"priority":  "MAJ",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %v", rec.Code, body)
	}
	if body["issueKey"] != "GUM-1" {
		t.Fatalf("issueKey = %v, want GUM-1", body["issueKey"])
	}
	if body["status"] != "OPEN" || body["resolution"] != "UNRESOLVED" {
		t.Fatalf("status/resolution = %v/%v", body["status"], body["resolution"])
	}
	reporter, ok := body["reporter"].(map[string]any)
	if !ok || reporter["username"] != "alice" {
		t.Fatalf("reporter = %v, want alice", body["reporter"])
	}
	reported, ok := body["reported"].(float64)
	if !ok || int64(reported)%1000 != 0 {
		t.Fatalf("reported = %v, want millis on a second boundary", body["reported"])
	}

	rec, body = f.do(t, http.MethodGet, "/rest/issues/GUM-1/", cookie, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	if body["summary"] != "Crash on save" {
		t.Fatalf("summary = %v", body["summary"])
	}
	if !strings.HasSuffix(body["commentsUrl"].(string), "/rest/issues/GUM-1/comments/") {
		t.Fatalf("commentsUrl = %v", body["commentsUrl"])
	}
}

func TestCreateIssueValidationErrors(t *testing.T) {
	f := newTestHandler(t, 25)
	cookie := f.login(t)

	rec, body := f.do(t, http.MethodPost, "/rest/issues/", cookie, map[string]any{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	for _, field := range []string{"summary", "project", "issueType", "priority"} {
		if _, ok := body[field]; !ok {
			t.Errorf("missing error entry for %q in %v", field, body)
		}
	}
}

func TestListIssuesPagination(t *testing.T) {
	f := newTestHandler(t, 2)
	cookie := f.login(t)

	for _, summary := range []string{"first", "second", "third"} {
		rec, body := f.do(t, http.MethodPost, "/rest/issues/", cookie, map[string]any{
			"summary":   summary,
			"project":   f.project.ID,
			"issueType": "BUG",
			"priority":  "MAJ",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %q status = %d, body %v", summary, rec.Code, body)
		}
	}

	rec, body := f.do(t, http.MethodGet, "/rest/issues/", cookie, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	if body["count"] != float64(3) {
		t.Fatalf("count = %v, want 3", body["count"])
	}
	results, ok := body["results"].([]any)
	if !ok || len(results) != 2 {
		t.Fatalf("results = %v, want 2 items", body["results"])
	}
	next, ok := body["next"].(string)
	if !ok || !strings.Contains(next, "page=2") {
		t.Fatalf("next = %v, want a page=2 URL", body["next"])
	}
	if body["previous"] != nil {
		t.Fatalf("previous = %v, want null", body["previous"])
	}

	rec, body = f.do(t, http.MethodGet, "/rest/issues/?page=2", cookie, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("page 2 status = %d", rec.Code)
	}
	previous, ok := body["previous"].(string)
	if !ok || strings.Contains(previous, "page=") {
		t.Fatalf("previous = %v, want a page-less URL", body["previous"])
	}
	if body["next"] != nil {
		t.Fatalf("next = %v, want null", body["next"])
	}
}

func TestDetailRoutesWithoutTrailingSlash(t *testing.T) {
	f := newTestHandler(t, 25)
	cookie := f.login(t)

	rec, body := f.do(t, http.MethodPost, "/rest/issues/", cookie, map[string]any{
		"summary":   "Crash on save",
		"project":   f.project.ID,
		"issueType": "BUG",
		"priority":  "MAJ",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create issue status = %d, body %v", rec.Code, body)
	}
	rec, body = f.do(t, http.MethodPost, "/rest/issues/GUM-1/comments/", cookie, map[string]any{
		"text": "first",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create comment status = %d, body %v", rec.Code, body)
	}
	commentID := int64(body["id"].(float64))

	rec, body = f.do(t, http.MethodPut, fmt.Sprintf("/rest/comments/%d", commentID), cookie, map[string]any{
		"text": "edited",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update comment status = %d, body %v", rec.Code, body)
	}
	if body["text"] != "edited" {
		t.Fatalf("text = %v, want edited", body["text"])
	}

	rec, body = f.do(t, http.MethodGet, fmt.Sprintf("/rest/components/%d", f.project.Components[0].ID), cookie, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get component status = %d, body %v", rec.Code, body)
	}
	if body["name"] != "ui" {
		t.Fatalf("component name = %v, want ui", body["name"])
	}

	rec, body = f.do(t, http.MethodGet, fmt.Sprintf("/rest/versions/%d", f.project.Versions[0].ID), cookie, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get version status = %d, body %v", rec.Code, body)
	}
	if body["name"] != "1.0" {
		t.Fatalf("version name = %v, want 1.0", body["name"])
	}
}

func TestUpdateRoundTripKeepsFields(t *testing.T) {
	f := newTestHandler(t, 25)
	cookie := f.login(t)

	rec, body := f.do(t, http.MethodPost, "/rest/issues/", cookie, map[string]any{
		"summary":          "Crash on save",
		"description":      "Saving a draft crashes the editor.",
		"stepsToReproduce": "Open a draft, hit save.",
		"project":          f.project.ID,
		"issueType":        "BUG",
		"priority":         "MAJ",
		"components":       []any{f.project.Components[0].ID},
		"affectsVersions":  []any{f.project.Versions[0].ID},
		"fixVersions":      []any{f.project.Versions[1].ID},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %v", rec.Code, body)
	}

	_, before := f.do(t, http.MethodGet, "/rest/issues/GUM-1/", cookie, nil)

	rec, after := f.do(t, http.MethodPut, "/rest/issues/GUM-1/", cookie, before)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %v", rec.Code, after)
	}

	for key, want := range before {
		if key == "lastUpdated" {
			continue
		}
		if got := after[key]; !reflect.DeepEqual(got, want) {
			t.Errorf("%s = %v after round trip, want %v", key, got, want)
		}
	}
}

func TestIssueNotFound(t *testing.T) {
	f := newTestHandler(t, 25)
	cookie := f.login(t)

	rec, body := f.do(t, http.MethodGet, "/rest/issues/GUM-999/", cookie, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if body["detail"] != "Not found." {
		t.Fatalf("detail = %v", body["detail"])
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	f := newTestHandler(t, 25)
	cookie := f.login(t)

	rec, body := f.do(t, http.MethodGet, "/rest/settings/", cookie, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	if body["unsaved"] != true {
		t.Fatalf("fresh session settings = %v, want unsaved flag", body)
	}

	rec, body = f.do(t, http.MethodPut, "/rest/settings/", cookie, map[string]any{
		"pageSize": 10,
		"theme":    "dark",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("put status = %d, body %v", rec.Code, body)
	}

	rec, body = f.do(t, http.MethodGet, "/rest/settings/", cookie, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	if body["pageSize"] != float64(10) || body["theme"] != "dark" {
		t.Fatalf("settings = %v", body)
	}
}
