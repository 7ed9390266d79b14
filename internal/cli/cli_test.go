package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ros-acados/nodegen/internal/diag"
)

// run executes the root command with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand(&Options{}, nil)
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func decodeTree(t *testing.T, out string) map[string]any {
	t.Helper()
	var tree map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &tree))
	return tree
}

func TestGenerate_WithOverrides(t *testing.T) {
	out, _, err := run(t, "generate",
		"--set", "ros.node_name=my_node",
		"--set", `package.dependencies=["std_msgs"]`,
	)
	require.NoError(t, err)

	tree := decodeTree(t, out)
	assert.Equal(t, "my_node", tree["ros"].(map[string]any)["node_name"])
	assert.Equal(t, []any{"std_msgs"}, tree["package"].(map[string]any)["dependencies"])
}

func TestGenerate_SolverAndOutputFile(t *testing.T) {
	dir := t.TempDir()
	solver := filepath.Join(dir, "ocp.json")
	require.NoError(t, os.WriteFile(solver, []byte(`{"cost": {"W": [[2, 0], [0, 3]]}}`), 0o644))
	output := filepath.Join(dir, "gen", "context.yaml")

	_, _, err := run(t, "generate", "--solver", solver, "-o", output)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	weights := decodeTree(t, string(data))["acados"].(map[string]any)["weights"].(map[string]any)
	assert.Equal(t, []any{2.0, 3.0}, weights["W"].(map[string]any)["values"])
	assert.Equal(t, true, weights["has_stage"])
}

func TestGenerate_SchemaViolation(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "node.yaml")
	require.NoError(t, os.WriteFile(config, []byte("foo: 1\n"), 0o644))

	out, _, err := run(t, "generate", "--config", config)
	require.Error(t, err)
	assert.True(t, diag.IsSchemaViolation(err))
	assert.Empty(t, out)
}

func TestGenerate_EnvDefaults(t *testing.T) {
	dir := t.TempDir()
	setFile := filepath.Join(dir, "overrides.env")
	require.NoError(t, os.WriteFile(setFile, []byte("package.name=env_pkg\n"), 0o644))

	t.Setenv("NODEGEN_SET", "ros.node_name=env_node;acados.x0.values=[1,2]")
	t.Setenv("NODEGEN_SET_FILE", setFile)
	t.Setenv("NODEGEN_FORMAT", "json")

	out, _, err := run(t, "generate")
	require.NoError(t, err)

	tree := decodeTree(t, out)
	assert.Equal(t, "env_node", tree["ros"].(map[string]any)["node_name"])
	assert.Equal(t, "env_pkg", tree["package"].(map[string]any)["name"])
	x0 := tree["acados"].(map[string]any)["x0"].(map[string]any)
	assert.Equal(t, []any{1, 2}, x0["values"])
}

func TestGenerate_FlagWinsOverEnv(t *testing.T) {
	t.Setenv("NODEGEN_SET", "ros.node_name=env_node")

	out, _, err := run(t, "generate", "--set", "ros.node_name=flag_node")
	require.NoError(t, err)
	assert.Equal(t, "flag_node", decodeTree(t, out)["ros"].(map[string]any)["node_name"])
}

func TestGenerate_BadFormat(t *testing.T) {
	_, _, err := run(t, "generate", "--format", "toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestDefaults(t *testing.T) {
	out, _, err := run(t, "defaults")
	require.NoError(t, err)

	tree := decodeTree(t, out)
	solver := tree["acados"].(map[string]any)["solver"].(map[string]any)
	assert.Equal(t, "SQP_RTI", solver["nlp_solver_type"])
	assert.Equal(t, "my_package", tree["package"].(map[string]any)["name"])
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(good, []byte("ros:\n  node_name: ok\n"), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("ros:\n  node: nope\n"), 0o644))

	_, stderr, err := run(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, stderr, "descriptor is valid")

	_, _, err = run(t, "validate", bad)
	require.Error(t, err)
	assert.True(t, diag.IsSchemaViolation(err))

	_, _, err = run(t, "validate")
	require.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]string{"": "", "YAML": "yaml", "yml": "yaml", " json ": "json"} {
		got, err := parseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, string(got), in)
	}
}
