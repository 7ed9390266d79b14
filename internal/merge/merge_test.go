package merge

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ros-acados/nodegen/internal/diag"
	"github.com/ros-acados/nodegen/internal/genctx"
)

func sampleTree() map[string]any {
	return map[string]any{
		"ros": map[string]any{
			"node_name":  "acados_node",
			"publishers": []any{map[string]any{"topic": "/cmd"}},
		},
		"package": map[string]any{
			"name":         "acados_pkg",
			"dependencies": []string{"rclcpp"},
		},
		"acados": map[string]any{
			"x0": []float64{0, 1},
			"solver": map[string]any{
				"warmstart": false,
			},
		},
	}
}

func TestMerge_ReplacesAndRecurses(t *testing.T) {
	dst := sampleTree()
	delta := map[string]any{
		"ros":     map[string]any{"node_name": "my_node"},
		"package": map[string]any{"dependencies": []any{"std_msgs"}},
		"acados":  map[string]any{"solver": map[string]any{"warmstart": true}},
	}

	got, warnings := Merge(dst, delta, nil)
	assert.Empty(t, warnings)

	want := sampleTree()
	want["ros"].(map[string]any)["node_name"] = "my_node"
	want["package"].(map[string]any)["dependencies"] = []any{"std_msgs"}
	want["acados"].(map[string]any)["solver"].(map[string]any)["warmstart"] = true
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Merge mismatch (-want +got):\n%s", diff)
	}
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	dst := sampleTree()
	delta := map[string]any{
		"ros":    map[string]any{"node_name": "changed"},
		"acados": map[string]any{"x0": []float64{5}},
	}

	got, _ := Merge(dst, delta, nil)
	if diff := cmp.Diff(sampleTree(), dst); diff != "" {
		t.Fatalf("dst mutated (-want +got):\n%s", diff)
	}

	// The merged tree must not share slices with delta.
	got["acados"].(map[string]any)["x0"].([]float64)[0] = 9
	assert.Equal(t, []float64{5}, delta["acados"].(map[string]any)["x0"])
}

func TestMerge_UnknownKeyIsSkipped(t *testing.T) {
	dst := sampleTree()
	got, warnings := Merge(dst, map[string]any{
		"nonexistent": map[string]any{"key": 1},
		"ros":         map[string]any{"bogus": true},
	}, nil)

	if diff := cmp.Diff(sampleTree(), got); diff != "" {
		t.Fatalf("tree changed (-want +got):\n%s", diff)
	}
	require.Len(t, warnings, 2)
	assert.Equal(t, diag.UnknownOverrideKey, warnings[0].Kind)
	assert.Equal(t, "nonexistent", warnings[0].Path)
	assert.Equal(t, "ros.bogus", warnings[1].Path)
}

func TestMerge_LeafReplacedRegardlessOfType(t *testing.T) {
	got, warnings := Merge(sampleTree(), map[string]any{
		"ros":    "flattened",
		"acados": map[string]any{"x0": map[string]any{"odd": 1}},
	}, nil)
	assert.Empty(t, warnings)
	assert.Equal(t, "flattened", got["ros"])
	assert.Equal(t, map[string]any{"odd": 1}, got["acados"].(map[string]any)["x0"])
}

func TestMerge_Idempotent(t *testing.T) {
	delta := map[string]any{
		"ros":     map[string]any{"node_name": "my_node"},
		"package": map[string]any{"name": "pkg", "missing": 1},
	}
	once, _ := Merge(sampleTree(), delta, nil)
	twice, _ := Merge(once, delta, nil)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("second merge changed the tree (-once +twice):\n%s", diff)
	}
}

func TestMerge_RenderedContext(t *testing.T) {
	tree := genctx.Default().ToMap()
	got, warnings := Merge(tree, map[string]any{
		"acados": map[string]any{
			"solver": map[string]any{"qp_solver": "FULL_CONDENSING_QPOASES"},
		},
	}, nil)
	assert.Empty(t, warnings)

	solver := got["acados"].(map[string]any)["solver"].(map[string]any)
	assert.Equal(t, "FULL_CONDENSING_QPOASES", solver["qp_solver"])
	assert.Equal(t, "SQP_RTI", solver["nlp_solver_type"])
}

func TestCopy_Nil(t *testing.T) {
	assert.Equal(t, map[string]any{}, Copy(nil))
}
