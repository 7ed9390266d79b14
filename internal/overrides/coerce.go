package overrides

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Coerce converts a raw override value into a typed value. The forms are tried
// in order and the first success wins:
//
//  1. a JSON document, when the value starts with '{' or '['
//  2. a case-insensitive true/false literal
//  3. an integer
//  4. a floating-point number
//  5. the trimmed string itself
//
// Coerce never fails; a value matching no typed form is returned as a string.
func Coerce(raw string) any {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[") {
		var v any
		if err := json.Unmarshal([]byte(s), &v); err == nil {
			return v
		}
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
