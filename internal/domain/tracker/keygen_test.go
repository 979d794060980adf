package tracker

import "testing"

func TestProjectNameToKeys(t *testing.T) {
	tests := []struct {
		name string
		want []string
	}{
		{"Project Name", []string{"PROJECT", "PN", "PROJECTNAME", "NAME"}},
		{"ProjectName", []string{"PROJECT", "PN", "PROJECTNAME", "NAME"}},
		{"project_name", []string{"PROJECT", "PN", "PROJECTNAME", "NAME"}},
		{"The Sample App", []string{"SAMPLE", "SA", "SAMPLEAPP", "APP"}},
		{"Gumshoe", []string{"GUMSHOE"}},
		{"HTTPServer", []string{"HTTP", "HS", "HTTPSERVER", "SERVER"}},
		{"  ", nil},
	}

	for _, tt := range tests {
		got := ProjectNameToKeys(tt.name)
		if len(got) != len(tt.want) {
			t.Fatalf("ProjectNameToKeys(%q) = %v, want %v", tt.name, got, tt.want)
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Fatalf("ProjectNameToKeys(%q) = %v, want %v", tt.name, got, tt.want)
			}
		}
	}
}

func TestAssignKeyPrefersFirstFreeCandidate(t *testing.T) {
	taken := map[string]struct{}{"PROJECT": {}}

	key, err := AssignKey("Project Name", taken, nil)
	if err != nil {
		t.Fatalf("AssignKey() error = %v", err)
	}
	if key != "PN" {
		t.Fatalf("AssignKey() = %s", key)
	}
}

func TestAssignKeyOverride(t *testing.T) {
	overrides := map[string]string{"Project Name": "CUSTOM"}

	key, err := AssignKey("Project Name", nil, overrides)
	if err != nil {
		t.Fatalf("AssignKey() error = %v", err)
	}
	if key != "CUSTOM" {
		t.Fatalf("AssignKey() = %s", key)
	}

	taken := map[string]struct{}{"CUSTOM": {}}
	if _, err := AssignKey("Project Name", taken, overrides); err == nil {
		t.Fatal("AssignKey() with taken override succeeded")
	}
}

func TestAssignKeyExhausted(t *testing.T) {
	taken := map[string]struct{}{"GUMSHOE": {}}
	if _, err := AssignKey("Gumshoe", taken, nil); err == nil {
		t.Fatal("AssignKey() with every candidate taken succeeded")
	}
}

func TestFormatIssueKey(t *testing.T) {
	if got := FormatIssueKey("GUM", 7); got != "GUM-7" {
		t.Fatalf("FormatIssueKey() = %s", got)
	}
}
