// Package merge applies override deltas onto a rendered generation context.
//
// The merge is lenient: keys the destination does not know are skipped and
// reported, never added. Whether the merged values still fit the schema is
// decided afterwards by the strict descriptor decoder.
package merge

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/ros-acados/nodegen/internal/diag"
)

// Merge returns a copy of dst with delta applied. dst is not modified.
//
// For every key of delta: an absent key is skipped with an UnknownOverrideKey
// warning carrying the full dotted path; when both sides hold mappings the
// merge recurses; otherwise the destination value is replaced whatever its
// type. Keys are visited in lexical order so warnings come out stable.
func Merge(dst, delta map[string]any, logger *slog.Logger) (map[string]any, []diag.Warning) {
	out := Copy(dst)
	var warnings []diag.Warning
	mergeInto(out, delta, "", &warnings)
	diag.Log(logger, warnings)
	return out, warnings
}

func mergeInto(dst, delta map[string]any, prefix string, warnings *[]diag.Warning) {
	for _, key := range slices.Sorted(maps.Keys(delta)) {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		current, ok := dst[key]
		if !ok {
			*warnings = append(*warnings, diag.Warning{
				Kind:    diag.UnknownOverrideKey,
				Path:    path,
				Message: "override key not present in context, skipping",
			})
			continue
		}

		incoming := delta[key]
		dstMap, dstIsMap := current.(map[string]any)
		deltaMap, deltaIsMap := incoming.(map[string]any)
		if dstIsMap && deltaIsMap {
			mergeInto(dstMap, deltaMap, path, warnings)
			continue
		}
		dst[key] = copyValue(incoming)
	}
}

// Copy deep-copies a plain tree of maps, slices and primitive leaves.
func Copy(tree map[string]any) map[string]any {
	if tree == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(tree))
	for k, v := range tree {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return Copy(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = copyValue(item)
		}
		return out
	case []float64:
		return slices.Clone(t)
	case []string:
		return slices.Clone(t)
	default:
		return v
	}
}
