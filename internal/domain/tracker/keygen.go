package tracker

import (
	"fmt"
	"strings"
	"unicode"
)

// Words dropped from project names before building key candidates.
var insignificantWords = map[string]struct{}{
	"":    {},
	"THE": {},
	"A":   {},
}

// ProjectNameToKeys returns issue-key candidates for a project name, most
// preferred first: the first significant word, then (for multi-word names)
// the acronym and the full concatenation, then each remaining word.
func ProjectNameToKeys(name string) []string {
	trimmed := strings.TrimSpace(name)

	var parts []string
	switch {
	case strings.Contains(trimmed, " "):
		parts = strings.Split(trimmed, " ")
	case strings.Contains(trimmed, "_"):
		parts = strings.Split(trimmed, "_")
	default:
		parts = splitCamelCase(trimmed)
	}

	words := make([]string, 0, len(parts))
	for _, part := range parts {
		word := strings.ToUpper(strings.TrimSpace(part))
		if _, skip := insignificantWords[word]; skip {
			continue
		}
		words = append(words, word)
	}

	if len(words) == 0 {
		return nil
	}

	suggestions := []string{words[0]}
	if len(words) > 1 {
		acronym := strings.Builder{}
		for _, word := range words {
			acronym.WriteString(word[:1])
		}
		suggestions = append(suggestions, acronym.String())
		suggestions = append(suggestions, strings.Join(words, ""))
	}
	suggestions = append(suggestions, words[1:]...)

	return suggestions
}

// splitCamelCase breaks on a lower-to-upper transition and before an upper
// letter followed by a lower letter that is not at the start.
func splitCamelCase(s string) []string {
	runes := []rune(s)
	parts := make([]string, 0, 4)
	start := 0

	for i := 1; i < len(runes); i++ {
		boundary := false
		if unicode.IsUpper(runes[i]) {
			if unicode.IsLower(runes[i-1]) {
				boundary = true
			} else if i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
				boundary = true
			}
		}
		if boundary && i > start {
			parts = append(parts, string(runes[start:i]))
			start = i
		}
	}
	if start < len(runes) {
		parts = append(parts, string(runes[start:]))
	}

	return parts
}

// AssignKey picks the issue-key prefix for a project. An explicit override
// wins but must not collide with a taken key; otherwise the first unused
// candidate from ProjectNameToKeys is chosen.
func AssignKey(name string, taken map[string]struct{}, overrides map[string]string) (string, error) {
	if override, ok := overrides[name]; ok {
		if _, used := taken[override]; used {
			return "", fmt.Errorf("issue key override %q for project %q is already taken", override, name)
		}
		return override, nil
	}

	for _, candidate := range ProjectNameToKeys(name) {
		if _, used := taken[candidate]; !used {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("no available issue key for project %q", name)
}

// FormatIssueKey renders the human-facing issue identifier for a reserved
// per-project sequence number.
func FormatIssueKey(prefix string, seq uint64) string {
	return fmt.Sprintf("%s-%d", prefix, seq)
}
