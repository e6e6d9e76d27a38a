package recipe

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const rawPreviewRunes = 200

var errNotObject = errors.New("response is not a JSON object")

// ParseLenient pulls a recipe object out of free-form model output. Unlike
// Extract it accepts a fence anywhere in the text. When nothing parses it
// returns a placeholder recipe describing the failure.
func ParseLenient(text string) map[string]any {
	obj, err := parseLenient(text)
	if err != nil {
		return map[string]any{
			"recipe_name":      "Parse Error",
			"ingredients":      []any{},
			"method":           []any{},
			"serving_size":     "Unknown",
			"additional_notes": fmt.Sprintf("Failed to parse JSON: %v. Raw response: %s...", err, preview(text)),
		}
	}
	return obj
}

func parseLenient(text string) (map[string]any, error) {
	candidate := strings.TrimSpace(text)
	if body, ok := fenced(text, "```json"); ok {
		candidate = body
	} else if body, ok := fenced(text, "```"); ok {
		candidate = body
	}
	if candidate == "" {
		return nil, errors.New("empty response")
	}
	obj, ok := decodeObject(candidate)
	if !ok {
		if _, isJSON := decodeAny(candidate); isJSON {
			return nil, errNotObject
		}
		return nil, errors.New("invalid JSON")
	}
	return obj, nil
}

// fenced returns the trimmed text between the first opener and the next closing fence.
func fenced(text, opener string) (string, bool) {
	start := strings.Index(text, opener)
	if start < 0 {
		return "", false
	}
	rest := text[start+len(opener):]
	if end := strings.Index(rest, "```"); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest), true
}

func preview(text string) string {
	if utf8.RuneCountInString(text) <= rawPreviewRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:rawPreviewRunes])
}
