// Package genctx defines the generation context tree handed to the emitter:
// package identity, the ROS node interface, and the acados solver subtree.
//
// Groups of value vectors (constraints, weights, slacks, references) are
// described by explicit field tables so that defaults, import, derivation and
// serialization share one declaration per field.
package genctx

import "slices"

// ValueVector is a named sequence of floats exported by the solver.
type ValueVector struct {
	// Name is the acados field name (e.g. "lbx", "W_e").
	Name string `yaml:"name"`
	// Label is a human-readable label used in generated log lines.
	Label string `yaml:"label"`
	// Values holds the numeric entries.
	Values []float64 `yaml:"values"`
}

// NonEmpty reports whether the vector carries at least one value.
func (v ValueVector) NonEmpty() bool {
	return len(v.Values) > 0
}

// Clone returns a copy that shares no memory with v.
func (v ValueVector) Clone() ValueVector {
	out := v
	out.Values = cloneFloats(v.Values)
	return out
}

// ToMap renders the vector as a plain mapping.
func (v ValueVector) ToMap() map[string]any {
	return map[string]any{
		"name":   v.Name,
		"label":  v.Label,
		"values": cloneFloats(v.Values),
	}
}

// cloneFloats copies values, mapping nil to an empty slice so that rendered
// trees always carry a sequence.
func cloneFloats(values []float64) []float64 {
	if values == nil {
		return []float64{}
	}
	return slices.Clone(values)
}
