package overrides

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ros-acados/nodegen/internal/diag"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{in: "5", want: 5},
		{in: " -12 ", want: -12},
		{in: "true", want: true},
		{in: "FALSE", want: false},
		{in: "True", want: true},
		{in: "2.5", want: 2.5},
		{in: "1e-3", want: 0.001},
		{in: "[1,2]", want: []any{1.0, 2.0}},
		{in: `{"a": "b"}`, want: map[string]any{"a": "b"}},
		{in: `["std_msgs"]`, want: []any{"std_msgs"}},
		{in: "abc", want: "abc"},
		{in: "[not json", want: "[not json"},
		{in: "", want: ""},
		{in: "yes", want: "yes"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Coerce(tt.in))
		})
	}
}

func TestParseArgs(t *testing.T) {
	pairs, warnings := ParseArgs([]string{
		"ros.node_name=my_node",
		"acados.solver.warmstart=true",
		"package.description=a=b",
		"noequals",
		"=value",
		"package.version=1.0",
		"package.version=2",
	})

	want := map[string]any{
		"ros.node_name":           "my_node",
		"acados.solver.warmstart": true,
		"package.description":     "a=b",
		"package.version":         2,
	}
	if diff := cmp.Diff(want, pairs); diff != "" {
		t.Fatalf("pairs mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, warnings, 2)
	assert.Equal(t, "noequals", warnings[0].Path)
	assert.Equal(t, "=value", warnings[1].Path)
	for _, w := range warnings {
		assert.Equal(t, diag.UnknownOverrideKey, w.Kind)
	}
}

func TestExpand(t *testing.T) {
	got := Expand(map[string]any{
		"ros.node_name":           "my_node",
		"acados.solver.warmstart": true,
		"acados.solver.qp_solver": "FULL_CONDENSING_QPOASES",
		"package.dependencies":    []any{"std_msgs"},
		"script_path":             "/tmp/gen.py",
	})
	want := map[string]any{
		"ros": map[string]any{"node_name": "my_node"},
		"acados": map[string]any{
			"solver": map[string]any{
				"warmstart": true,
				"qp_solver": "FULL_CONDENSING_QPOASES",
			},
		},
		"package":     map[string]any{"dependencies": []any{"std_msgs"}},
		"script_path": "/tmp/gen.py",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Expand mismatch (-want +got):\n%s", diff)
	}
}

func TestExpand_LeafAndPrefixCollision(t *testing.T) {
	got := Expand(map[string]any{"a": 1, "a.b": 2})
	assert.Equal(t, map[string]any{"a": map[string]any{"b": 2}}, got)
}

func TestParse(t *testing.T) {
	delta, warnings := Parse([]string{
		"ros.node_name=my_node",
		`package.dependencies=["std_msgs"]`,
	})
	assert.Empty(t, warnings)
	want := map[string]any{
		"ros":     map[string]any{"node_name": "my_node"},
		"package": map[string]any{"dependencies": []any{"std_msgs"}},
	}
	if diff := cmp.Diff(want, delta); diff != "" {
		t.Fatalf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMap(t *testing.T) {
	got, warnings := ParseMap(map[string]string{
		"acados.x0.values": "[0, 0.5]",
		" ros.node_name ":  "mapped",
		"":                 "orphan",
	})
	assert.Equal(t, map[string]any{
		"acados.x0.values": []any{0.0, 0.5},
		"ros.node_name":    "mapped",
	}, got)
	require.Len(t, warnings, 1)
	assert.Equal(t, diag.UnknownOverrideKey, warnings[0].Kind)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.env")
	content := "# node settings\n" +
		"ros.node_name=file_node\n" +
		"acados.solver.warmstart=true\n" +
		"\n" +
		"package.version=\"3\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"ros.node_name":           "file_node",
		"acados.solver.warmstart": true,
		"package.version":         3,
	}, got)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read override file")
}
