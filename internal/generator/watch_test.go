package generator

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// syncRecorder is an Emitter safe for use from the watch loop.
type syncRecorder struct {
	mu    sync.Mutex
	names []string
}

func (r *syncRecorder) Emit(_ context.Context, tree map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = append(r.names, tree["ros"].(map[string]any)["node_name"].(string))
	return nil
}

func (r *syncRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.names...)
}

func TestWatch_RegeneratesOnDescriptorChange(t *testing.T) {
	dir := t.TempDir()
	config := writeFile(t, dir, "node.yaml", "ros:\n  node_name: first\n")

	ctx, cancel := context.WithCancel(t.Context())
	rec := &syncRecorder{}
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, Request{DescriptorPath: config}, rec, nil, 20*time.Millisecond)
	}()

	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, 5*time.Second, 10*time.Millisecond)

	// Unrelated files in the same directory are ignored.
	writeFile(t, dir, "notes.txt", "scratch")
	require.NoError(t, os.WriteFile(config, []byte("ros:\n  node_name: second\n"), 0o644))

	require.Eventually(t, func() bool {
		names := rec.snapshot()
		return len(names) > 0 && names[len(names)-1] == "second"
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatch_KeepsRunningAfterFailure(t *testing.T) {
	dir := t.TempDir()
	config := writeFile(t, dir, "node.yaml", "foo: 1\n")

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	rec := &syncRecorder{}
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, Request{DescriptorPath: config}, rec, nil, 20*time.Millisecond)
	}()

	// The first run fails on the unknown field; fixing the file recovers.
	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
	require.NoError(t, os.WriteFile(config, []byte("ros:\n  node_name: fixed\n"), 0o644))

	require.Eventually(t, func() bool {
		names := rec.snapshot()
		return len(names) > 0 && names[len(names)-1] == "fixed"
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestWatch_RequiresInputs(t *testing.T) {
	err := Watch(t.Context(), Request{}, &syncRecorder{}, nil, 0)
	require.Error(t, err)
}

func TestInputs(t *testing.T) {
	dir := t.TempDir()
	solverDir := filepath.Join(dir, "solver")
	require.NoError(t, os.MkdirAll(solverDir, 0o755))

	set := inputs(Request{
		DescriptorPath: filepath.Join(dir, "node.yaml"),
		SolverPath:     solverDir,
		OverrideFiles:  []string{filepath.Join(dir, "o.env")},
	})

	assert.True(t, set.matches(filepath.Join(dir, "node.yaml")))
	assert.True(t, set.matches(filepath.Join(dir, "o.env")))
	assert.True(t, set.matches(filepath.Join(solverDir, "acados_ocp.json")))
	assert.False(t, set.matches(filepath.Join(solverDir, "notes.txt")))
	assert.False(t, set.matches(filepath.Join(dir, "other.yaml")))
}
