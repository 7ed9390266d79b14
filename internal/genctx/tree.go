package genctx

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// TreeNode encodes a plain tree as a yaml node whose scalars keep their Go
// types: strings are always strings and floats are always floats, even when
// their value is integral. Plain yaml.Marshal writes float64(1) as 1, which
// decodes back as an int. json.Number leaves become ints or floats by their
// literal form.
func TreeNode(v any) *yaml.Node {
	switch t := v.(type) {
	case nil:
		return scalarNode("!!null", "null")
	case map[string]any:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range slices.Sorted(maps.Keys(t)) {
			n.Content = append(n.Content, scalarNode("!!str", k), TreeNode(t[k]))
		}
		return n
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range t {
			n.Content = append(n.Content, TreeNode(item))
		}
		return n
	case []float64:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, f := range t {
			n.Content = append(n.Content, scalarNode("!!float", formatFloat(f)))
		}
		return n
	case []string:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, s := range t {
			n.Content = append(n.Content, scalarNode("!!str", s))
		}
		return n
	case string:
		return scalarNode("!!str", t)
	case bool:
		return scalarNode("!!bool", strconv.FormatBool(t))
	case int:
		return scalarNode("!!int", strconv.Itoa(t))
	case int64:
		return scalarNode("!!int", strconv.FormatInt(t, 10))
	case uint64:
		return scalarNode("!!int", strconv.FormatUint(t, 10))
	case float64:
		return scalarNode("!!float", formatFloat(t))
	case float32:
		return scalarNode("!!float", formatFloat(float64(t)))
	case json.Number:
		if _, err := t.Int64(); err == nil {
			return scalarNode("!!int", t.String())
		}
		if f, err := t.Float64(); err == nil {
			return scalarNode("!!float", formatFloat(f))
		}
		return scalarNode("!!str", t.String())
	default:
		var n yaml.Node
		if err := n.Encode(t); err == nil {
			return &n
		}
		return scalarNode("!!str", fmt.Sprint(t))
	}
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// formatFloat renders f so that it resolves as a yaml float without a tag.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// cloneValue deep-copies an untyped value decoded from yaml or json.
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
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
