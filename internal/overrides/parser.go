// Package overrides turns ad-hoc "a.b.c=value" overrides into nested delta
// trees that can be merged into a rendered generation context.
package overrides

import (
	"fmt"
	"sort"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ros-acados/nodegen/internal/diag"
)

// Separator splits a dotted key into path segments.
const Separator = "."

// ParseArgs parses "key.path=value" tokens into a flat mapping of dotted keys
// to coerced values. The token is split on the first '='; tokens without one
// are skipped and reported as warnings. Later tokens override earlier ones.
func ParseArgs(tokens []string) (map[string]any, []diag.Warning) {
	out := make(map[string]any, len(tokens))
	var warnings []diag.Warning
	for _, token := range tokens {
		key, value, ok := strings.Cut(token, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			warnings = append(warnings, diag.Warning{
				Kind:    diag.UnknownOverrideKey,
				Path:    token,
				Message: "override is not of the form key.path=value, skipping",
			})
			continue
		}
		out[key] = Coerce(value)
	}
	return out, warnings
}

// ParseMap coerces a mapping of dotted keys to raw string values, the same
// way ParseArgs coerces tokens. Blank keys are skipped with a warning.
func ParseMap(raw map[string]string) (map[string]any, []diag.Warning) {
	out := make(map[string]any, len(raw))
	var warnings []diag.Warning
	for k, v := range raw {
		key := strings.TrimSpace(k)
		if key == "" {
			warnings = append(warnings, diag.Warning{
				Kind:    diag.UnknownOverrideKey,
				Path:    k,
				Message: "override key is empty, skipping",
			})
			continue
		}
		out[key] = Coerce(v)
	}
	return out, warnings
}

// LoadFile reads an override file of "key.path=value" lines. The file uses
// dotenv syntax: comments, blank lines, quoting and "export" prefixes are
// handled by godotenv.
func LoadFile(path string) (map[string]any, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read override file %q: %w", path, err)
	}
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[k] = Coerce(v)
	}
	return out, nil
}

// Expand turns a flat mapping of dotted keys into a nested delta tree; the last
// segment of each key holds the value. Keys are applied in lexical order so
// that the result does not depend on map iteration: when a key is both a leaf
// and a prefix of another key ("a=1" and "a.b=2"), the longer key wins.
func Expand(pairs map[string]any) map[string]any {
	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any)
	for _, key := range keys {
		parts := strings.Split(key, Separator)
		cur := out
		for _, part := range parts[:len(parts)-1] {
			next, ok := cur[part].(map[string]any)
			if !ok {
				next = make(map[string]any)
				cur[part] = next
			}
			cur = next
		}
		cur[parts[len(parts)-1]] = pairs[key]
	}
	return out
}

// Parse is ParseArgs followed by Expand.
func Parse(tokens []string) (map[string]any, []diag.Warning) {
	pairs, warnings := ParseArgs(tokens)
	return Expand(pairs), warnings
}
