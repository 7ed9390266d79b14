// Package generator runs one generation request: it layers the descriptor, the
// solver export and the overrides into a finished context tree and hands the
// tree to an Emitter.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"strings"

	"github.com/ros-acados/nodegen/internal/descriptor"
	"github.com/ros-acados/nodegen/internal/diag"
	"github.com/ros-acados/nodegen/internal/genctx"
	"github.com/ros-acados/nodegen/internal/logging"
	"github.com/ros-acados/nodegen/internal/merge"
	"github.com/ros-acados/nodegen/internal/overrides"
	"github.com/ros-acados/nodegen/internal/solverexport"
)

// Request describes one generation request.
type Request struct {
	// SolverPath is the solver export file or the directory holding it.
	SolverPath string
	// DescriptorPath is the package/node descriptor; empty means schema defaults.
	DescriptorPath string
	// ScriptPath is recorded in the context as script_path when set.
	ScriptPath string
	// OverrideFiles are dotenv-style files of key.path=value lines, applied in order.
	OverrideFiles []string
	// OverridePairs maps dotted keys to raw values, applied after OverrideFiles.
	OverridePairs map[string]string
	// Overrides are key.path=value tokens applied after OverridePairs.
	Overrides []string
	// OverrideTree is a nested delta applied after all other overrides.
	OverrideTree map[string]any
}

func (r Request) hasOverrides() bool {
	return len(r.OverrideFiles) > 0 || len(r.OverridePairs) > 0 ||
		len(r.Overrides) > 0 || len(r.OverrideTree) > 0
}

// Result is the outcome of a successful build.
type Result struct {
	// RequestID tags every log record of the request.
	RequestID string
	// Context is the finished, derived context.
	Context genctx.RootContext
	// Tree is Context rendered as a plain mapping for the emitter.
	Tree map[string]any
	// Warnings lists every non-fatal diagnostic raised while building.
	Warnings []diag.Warning
}

// Emitter consumes a finished context tree.
type Emitter interface {
	Emit(ctx context.Context, tree map[string]any) error
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(ctx context.Context, tree map[string]any) error

// Emit calls f.
func (f EmitterFunc) Emit(ctx context.Context, tree map[string]any) error {
	return f(ctx, tree)
}

// Build assembles the context for req. Only a SchemaViolation, an unreadable
// descriptor or override file, or a cancelled ctx make it fail; everything
// else degrades to defaults and is reported in Result.Warnings.
func Build(ctx context.Context, req Request, logger *slog.Logger) (Result, error) {
	logger, requestID := logging.ForRequest(logger)
	res := Result{RequestID: requestID}

	if err := ctx.Err(); err != nil {
		return res, err
	}

	root := genctx.Default()
	if strings.TrimSpace(req.DescriptorPath) != "" {
		logger.Debug("loading descriptor", "path", req.DescriptorPath)
		loaded, err := descriptor.LoadFile(req.DescriptorPath)
		if err != nil {
			return res, err
		}
		root = loaded
	}

	acados, warnings := solverexport.Import(req.SolverPath, logger)
	res.Warnings = append(res.Warnings, warnings...)
	root = root.WithAcados(acados)

	if req.ScriptPath != "" {
		root.ScriptPath = req.ScriptPath
	}

	if req.hasOverrides() {
		merged, warnings, err := applyOverrides(root, req, logger)
		res.Warnings = append(res.Warnings, warnings...)
		if err != nil {
			return res, err
		}
		root = merged
	}

	root = genctx.Derive(root)
	if err := descriptor.Validate(root); err != nil {
		return res, err
	}

	res.Context = root
	res.Tree = root.ToMap()
	logger.Info("context built",
		"package", root.Package.Name,
		"node", root.Ros.NodeName,
		"warnings", len(res.Warnings),
	)
	return res, nil
}

// Run builds the context for req and hands the tree to emitter. Nothing is
// emitted when the build fails.
func Run(ctx context.Context, req Request, emitter Emitter, logger *slog.Logger) (Result, error) {
	res, err := Build(ctx, req, logger)
	if err != nil {
		return res, err
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}
	if err := emitter.Emit(ctx, res.Tree); err != nil {
		return res, fmt.Errorf("emit context: %w", err)
	}
	return res, nil
}

// applyOverrides renders root, merges every override source into it and
// re-decodes the result strictly.
func applyOverrides(root genctx.RootContext, req Request, logger *slog.Logger) (genctx.RootContext, []diag.Warning, error) {
	pairs := make(map[string]any)
	for _, path := range req.OverrideFiles {
		fromFile, err := overrides.LoadFile(path)
		if err != nil {
			return genctx.RootContext{}, nil, err
		}
		maps.Copy(pairs, fromFile)
	}

	fromMap, warnings := overrides.ParseMap(req.OverridePairs)
	maps.Copy(pairs, fromMap)

	fromArgs, argWarnings := overrides.ParseArgs(req.Overrides)
	warnings = append(warnings, argWarnings...)
	maps.Copy(pairs, fromArgs)
	diag.Log(logger, warnings)

	tree := root.ToMap()
	if len(pairs) > 0 {
		var mergeWarnings []diag.Warning
		tree, mergeWarnings = merge.Merge(tree, overrides.Expand(pairs), logger)
		warnings = append(warnings, mergeWarnings...)
	}
	if len(req.OverrideTree) > 0 {
		var mergeWarnings []diag.Warning
		tree, mergeWarnings = merge.Merge(tree, req.OverrideTree, logger)
		warnings = append(warnings, mergeWarnings...)
	}

	merged, err := descriptor.DecodeTree(tree)
	if err != nil {
		return genctx.RootContext{}, warnings, err
	}
	logger.Debug("overrides applied", "keys", len(pairs))
	return merged, warnings, nil
}
