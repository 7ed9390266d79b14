package genctx

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// checkKnownKeys rejects mapping keys outside allowed, in the same form the
// yaml decoder reports unknown fields when KnownFields is enabled. Custom
// unmarshalers need it because yaml.Node.Decode does not inherit that setting.
func checkKnownKeys(node *yaml.Node, typeName string, allowed []string) error {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	var errs []string
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if !slices.Contains(allowed, key.Value) {
			errs = append(errs, fmt.Sprintf("line %d: field %s not found in type %s", key.Line, key.Value, typeName))
		}
	}
	if len(errs) > 0 {
		return &yaml.TypeError{Errors: errs}
	}
	return nil
}
