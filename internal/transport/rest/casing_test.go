package rest

import (
	"reflect"
	"testing"
)

func TestSnakeToCamel(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"summary", "summary"},
		{"issue_key", "issueKey"},
		{"steps_to_reproduce", "stepsToReproduce"},
		{"affects_versions", "affectsVersions"},
		{"last_updated", "lastUpdated"},
		{"_private", "Private"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := SnakeToCamel(tc.in); got != tc.want {
			t.Errorf("SnakeToCamel(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCamelToSnake(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"summary", "summary"},
		{"issueKey", "issue_key"},
		{"stepsToReproduce", "steps_to_reproduce"},
		{"fixVersions", "fix_versions"},
		{"assigneeID", "assignee_id"},
		{"HTTPStatus", "http_status"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := CamelToSnake(tc.in); got != tc.want {
			t.Errorf("CamelToSnake(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTransformKeysNested(t *testing.T) {
	in := map[string]any{
		"issue_key": "GUM-1",
		"fix_versions": []any{
			map[string]any{"version_id": float64(3)},
		},
		"assignee": map[string]any{"first_name": "A"},
		"count":    float64(1),
	}

	got := TransformKeys(in, SnakeToCamel)
	want := map[string]any{
		"issueKey": "GUM-1",
		"fixVersions": []any{
			map[string]any{"versionId": float64(3)},
		},
		"assignee": map[string]any{"firstName": "A"},
		"count":    float64(1),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TransformKeys = %#v, want %#v", got, want)
	}
}
