// Package solverexport imports the metadata an acados solver exports as JSON
// into the solver subtree of the generation context.
//
// Import never fails: a missing or corrupt export degrades to schema defaults
// (for the whole file or per offending section) and is reported as warnings.
package solverexport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ros-acados/nodegen/internal/diag"
	"github.com/ros-acados/nodegen/internal/genctx"
)

// Extension is the file extension selected when Import is given a directory.
const Extension = ".json"

// solverOptions mirrors the "solver" section of an export.
type solverOptions struct {
	NLPSolverType  string `json:"nlp_solver_type"`
	QPSolver       string `json:"qp_solver"`
	WarmstartFirst bool   `json:"warmstart_first"`
	Warmstart      bool   `json:"warmstart"`
}

// solverModel mirrors the "model" section of an export.
type solverModel struct {
	Name string `json:"name"`
}

// importer accumulates warnings for one Import call.
type importer struct {
	warnings []diag.Warning
}

// Import reads the solver export at path and returns the solver subtree it
// describes. When path is a directory the first *.json file in lexical order is
// used. Every warning is logged to logger and returned.
func Import(path string, logger *slog.Logger) (genctx.AcadosContext, []diag.Warning) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	imp := &importer{}
	out := imp.run(path, logger)
	diag.Log(logger, imp.warnings)
	return out, imp.warnings
}

func (imp *importer) warn(kind diag.Kind, path, format string, args ...any) {
	imp.warnings = append(imp.warnings, diag.Warning{Kind: kind, Path: path, Message: fmt.Sprintf(format, args...)})
}

func (imp *importer) run(path string, logger *slog.Logger) genctx.AcadosContext {
	out := genctx.DefaultAcadosContext()

	file, ok := imp.resolve(path)
	if !ok {
		return out
	}
	logger.Debug("loading solver export", "path", file)

	raw, err := os.ReadFile(file)
	if err != nil {
		imp.warn(diag.MalformedSource, file, "read solver export: %v", err)
		return out
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		imp.warn(diag.MalformedSource, file, "parse solver export: %v", err)
		return out
	}

	out.Solver = imp.solver(doc)
	out.Model = imp.model(doc)

	constraints := imp.section(doc, "constraints")
	cost := imp.section(doc, "cost")

	for _, f := range genctx.ConstraintFields() {
		if values, ok := imp.vector(constraints, "constraints", f.Key); ok {
			f.Get(&out.Constraints).Values = values
		}
	}
	for _, f := range genctx.WeightFields() {
		if values, ok := imp.diagonal(cost, "cost", f.Key); ok {
			f.Get(&out.Weights).Values = values
		}
	}
	for _, f := range genctx.SlackFields() {
		var values []float64
		var ok bool
		if isHessianKey(f.Key) {
			values, ok = imp.diagonalOrVector(cost, "cost", f.Key)
		} else {
			values, ok = imp.vector(cost, "cost", f.Key)
		}
		if ok {
			f.Get(&out.Slacks).Values = values
		}
	}
	for _, f := range genctx.ReferenceFields() {
		if values, ok := imp.vector(cost, "cost", f.Key); ok {
			f.Get(&out.References).Values = values
		}
	}
	if values, ok := imp.vector(doc, "", "parameter_values"); ok {
		out.ParameterValues.Values = values
	}
	if values, ok := imp.vector(constraints, "constraints", "lbx_0"); ok {
		out.X0.Values = values
	}

	logger.Debug("solver export loaded", "path", file, "model", out.Model.Name, "nlp_solver_type", out.Solver.NLPSolverType)
	return out
}

// resolve maps path to the export file to read.
func (imp *importer) resolve(path string) (string, bool) {
	path = strings.TrimSpace(path)
	if path == "" {
		imp.warn(diag.MissingSource, "", "solver export path is empty, using defaults")
		return "", false
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			imp.warn(diag.MissingSource, path, "solver export not found, using defaults")
		} else {
			imp.warn(diag.MalformedSource, path, "stat solver export: %v", err)
		}
		return "", false
	}
	if !info.IsDir() {
		return path, true
	}

	matches, err := filepath.Glob(filepath.Join(path, "*"+Extension))
	if err != nil || len(matches) == 0 {
		imp.warn(diag.MissingSource, path, "no *%s solver export in directory, using defaults", Extension)
		return "", false
	}
	return matches[0], true
}

// section returns the named object of doc, or nil when it is absent or not an object.
func (imp *importer) section(doc map[string]json.RawMessage, name string) map[string]json.RawMessage {
	raw, ok := doc[name]
	if !ok || isNull(raw) {
		return nil
	}
	var out map[string]json.RawMessage
	if err := json.Unmarshal(raw, &out); err != nil {
		imp.warn(diag.MalformedSource, name, "section is not an object, using defaults")
		return nil
	}
	return out
}

// solver decodes the solver options section. Exports written by the acados
// python interface name it "solver_options"; both names are accepted.
func (imp *importer) solver(doc map[string]json.RawMessage) genctx.SolverOptions {
	def := genctx.DefaultSolverOptions()
	name := "solver"
	raw, ok := doc[name]
	if !ok {
		name = "solver_options"
		raw, ok = doc[name]
	}
	if !ok || isNull(raw) {
		return def
	}

	opts := solverOptions{
		NLPSolverType:  def.NLPSolverType,
		QPSolver:       def.QPSolver,
		WarmstartFirst: def.WarmstartFirst,
		Warmstart:      def.Warmstart,
	}
	if err := json.Unmarshal(raw, &opts); err != nil {
		imp.warn(diag.MalformedSource, name, "decode solver options: %v", err)
		return def
	}
	return genctx.SolverOptions{
		NLPSolverType:  opts.NLPSolverType,
		QPSolver:       opts.QPSolver,
		WarmstartFirst: opts.WarmstartFirst,
		Warmstart:      opts.Warmstart,
	}
}

func (imp *importer) model(doc map[string]json.RawMessage) genctx.SolverModel {
	def := genctx.DefaultSolverModel()
	raw, ok := doc["model"]
	if !ok || isNull(raw) {
		return def
	}
	m := solverModel{Name: def.Name}
	if err := json.Unmarshal(raw, &m); err != nil {
		imp.warn(diag.MalformedSource, "model", "decode model: %v", err)
		return def
	}
	return genctx.SolverModel{Name: m.Name}
}

// value decodes key of section into a generic JSON value. Absent and null keys report false.
func (imp *importer) value(section map[string]json.RawMessage, key string) (any, bool) {
	raw, ok := section[key]
	if !ok || isNull(raw) {
		return nil, false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false
	}
	return v, true
}

// vector reads a flat numeric array.
func (imp *importer) vector(section map[string]json.RawMessage, prefix, key string) ([]float64, bool) {
	v, ok := imp.value(section, key)
	if !ok {
		return nil, false
	}
	values, ok := asVector(v)
	if !ok {
		imp.warn(diag.MalformedSource, joinPath(prefix, key), "expected a numeric array, keeping default")
		return nil, false
	}
	return values, true
}

// diagonal reads a weight matrix as its diagonal. Like Diagonal, any other
// shape yields an empty vector; a non-empty value that is not a matrix at all
// is also reported.
func (imp *importer) diagonal(section map[string]json.RawMessage, prefix, key string) ([]float64, bool) {
	v, ok := imp.value(section, key)
	if !ok {
		return nil, false
	}
	if !isMatrix(v) {
		if values, isVec := asVector(v); !isVec || len(values) > 0 {
			imp.warn(diag.MalformedSource, joinPath(prefix, key), "expected a square numeric matrix, using an empty vector")
		}
	}
	return Diagonal(v), true
}

// diagonalOrVector reads a square matrix as its diagonal, or a flat numeric
// array as-is. Slack Hessians are exported either way.
func (imp *importer) diagonalOrVector(section map[string]json.RawMessage, prefix, key string) ([]float64, bool) {
	v, ok := imp.value(section, key)
	if !ok {
		return nil, false
	}
	if isMatrix(v) {
		return Diagonal(v), true
	}
	values, ok := asVector(v)
	if !ok {
		imp.warn(diag.MalformedSource, joinPath(prefix, key), "expected a numeric matrix or array, keeping default")
		return nil, false
	}
	return values, true
}

// isHessianKey reports whether a slack key names a Hessian term (Zl*, Zu*)
// rather than a gradient term (zl*, zu*).
func isHessianKey(key string) bool {
	return strings.HasPrefix(key, "Z")
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
