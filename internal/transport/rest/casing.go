package rest

import (
	"strings"
	"unicode"
)

// SnakeToCamel converts an underscore-separated key to the external
// camelCase convention: first segment lowercase, the rest capitalized.
func SnakeToCamel(key string) string {
	segments := strings.Split(key, "_")
	if len(segments) == 1 {
		return key
	}

	var out strings.Builder
	out.WriteString(segments[0])
	for _, segment := range segments[1:] {
		if segment == "" {
			continue
		}
		out.WriteString(strings.ToUpper(segment[:1]))
		out.WriteString(segment[1:])
	}
	return out.String()
}

// CamelToSnake converts a camelCase key back to underscore-separated form.
// An underscore is inserted before an upper-case letter that follows a
// lower-case letter or digit, and before an upper-case letter that starts
// a new word ahead of a lower-case letter.
func CamelToSnake(key string) string {
	runes := []rune(key)
	var out strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prevLower := unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || nextLower {
				out.WriteRune('_')
			}
		}
		out.WriteRune(unicode.ToLower(r))
	}
	return out.String()
}

// TransformKeys rewrites every map key in a decoded JSON tree with fn,
// recursing through nested maps and slices. Scalars pass through unchanged.
func TransformKeys(data any, fn func(string) string) any {
	switch value := data.(type) {
	case map[string]any:
		out := make(map[string]any, len(value))
		for key, nested := range value {
			out[fn(key)] = TransformKeys(nested, fn)
		}
		return out
	case []any:
		out := make([]any, len(value))
		for i, nested := range value {
			out[i] = TransformKeys(nested, fn)
		}
		return out
	default:
		return data
	}
}
