// Package recipe turns the text a model returned into recipe data for display.
package recipe

import (
	"encoding/json"
	"io"
	"regexp"
	"strings"
)

// space also accepts Unicode spaces such as NBSP and the byte order mark.
const space = `[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]*`

// fencePattern matches text that is entirely one fenced block, optionally tagged json.
var fencePattern = regexp.MustCompile("(?is)^```(?:json)?" + space + "(.*?)" + space + "```$")

// Extract returns the JSON object embedded in text. The text may be the JSON
// itself or a single fenced block wrapping it. Anything else, including valid
// JSON that is not an object, yields ok == false.
func Extract(text string) (obj map[string]any, ok bool) {
	if text == "" {
		return nil, false
	}
	candidate := text
	if m := fencePattern.FindStringSubmatch(text); m != nil {
		candidate = m[1]
	}
	return decodeObject(candidate)
}

// decodeObject parses s as exactly one JSON value and returns it if it is an object.
func decodeObject(s string) (map[string]any, bool) {
	v, ok := decodeAny(s)
	if !ok {
		return nil, false
	}
	obj, ok := v.(map[string]any)
	if !ok || obj == nil {
		return nil, false
	}
	return obj, true
}

// decodeAny parses s as exactly one JSON value. Numbers are kept as
// json.Number so re-encoding reproduces them unchanged.
func decodeAny(s string) (any, bool) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, false
	}
	return v, true
}
