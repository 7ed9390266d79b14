package genctx

// RootContext is the complete generation context handed to the emitter.
// A RootContext is built fresh per generation request; functions in this
// package return new values instead of mutating their inputs.
type RootContext struct {
	// ScriptPath points at the solver script copied next to the generated node.
	ScriptPath string            `yaml:"script_path"`
	Package    PackageDescriptor `yaml:"package"`
	Ros        NodeDescriptor    `yaml:"ros"`
	Acados     AcadosContext     `yaml:"acados"`
}

// Default returns the schema defaults for every section.
func Default() RootContext {
	return RootContext{
		Package: DefaultPackageDescriptor(),
		Ros:     DefaultNodeDescriptor(),
		Acados:  DefaultAcadosContext(),
	}
}

// Clone deep-copies the tree.
func (r RootContext) Clone() RootContext {
	return RootContext{
		ScriptPath: r.ScriptPath,
		Package:    r.Package.Clone(),
		Ros:        r.Ros.Clone(),
		Acados:     r.Acados.Clone(),
	}
}

// WithAcados returns a copy of r whose solver subtree is replaced by acados.
func (r RootContext) WithAcados(acados AcadosContext) RootContext {
	out := r.Clone()
	out.Acados = acados.Clone()
	return out
}

// ToMap renders the tree as a plain nested mapping of primitive leaves.
// Sets are rendered as sorted sequences.
func (r RootContext) ToMap() map[string]any {
	return map[string]any{
		"script_path": r.ScriptPath,
		"package":     r.Package.ToMap(),
		"ros":         r.Ros.ToMap(),
		"acados":      r.Acados.ToMap(),
	}
}
