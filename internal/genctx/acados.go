package genctx

// SolverModel identifies the acados model the solver was generated for.
type SolverModel struct {
	Name string `yaml:"name"`
}

// SolverOptions selects the solver algorithms and warm-start behavior.
type SolverOptions struct {
	// NLPSolverType is the acados NLP solver (e.g. "SQP_RTI", "SQP").
	NLPSolverType string `yaml:"nlp_solver_type"`
	// QPSolver is the QP solver used inside the NLP iterations.
	QPSolver string `yaml:"qp_solver"`
	// WarmstartFirst warm-starts the very first solve.
	WarmstartFirst bool `yaml:"warmstart_first"`
	// Warmstart warm-starts every subsequent solve from the previous solution.
	Warmstart bool `yaml:"warmstart"`
}

// AcadosContext is the solver subtree of the generation context.
type AcadosContext struct {
	Model           SolverModel   `yaml:"model"`
	Solver          SolverOptions `yaml:"solver"`
	Constraints     ConstraintSet `yaml:"constraints"`
	Weights         WeightSet     `yaml:"weights"`
	Slacks          SlackSet      `yaml:"slacks"`
	References      ReferenceSet  `yaml:"references"`
	ParameterValues ValueVector   `yaml:"parameter_values"`
	X0              ValueVector   `yaml:"x0"`
}

// DefaultSolverModel returns the model used when no solver export is available.
func DefaultSolverModel() SolverModel {
	return SolverModel{Name: "my_model"}
}

// DefaultSolverOptions returns the solver options used when no solver export is available.
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		NLPSolverType:  "SQP_RTI",
		QPSolver:       "PARTIAL_CONDENSING_HPIPM",
		WarmstartFirst: true,
		Warmstart:      false,
	}
}

// DefaultConstraints returns a constraint set with every vector empty.
func DefaultConstraints() ConstraintSet { return constraintSpec.defaults() }

// DefaultWeights returns a weight set with every vector empty.
func DefaultWeights() WeightSet { return weightSpec.defaults() }

// DefaultSlacks returns a slack set with every vector empty.
func DefaultSlacks() SlackSet { return slackSpec.defaults() }

// DefaultReferences returns a reference set with every vector empty.
func DefaultReferences() ReferenceSet { return referenceSpec.defaults() }

// DefaultAcadosContext returns the solver subtree with schema defaults.
func DefaultAcadosContext() AcadosContext {
	return AcadosContext{
		Model:           DefaultSolverModel(),
		Solver:          DefaultSolverOptions(),
		Constraints:     DefaultConstraints(),
		Weights:         DefaultWeights(),
		Slacks:          DefaultSlacks(),
		References:      DefaultReferences(),
		ParameterValues: ValueVector{Name: "parameter_values", Label: "Parameter Values", Values: []float64{}},
		X0:              ValueVector{Name: "x0", Label: "Initial State", Values: []float64{}},
	}
}

// Clone deep-copies the subtree.
func (a AcadosContext) Clone() AcadosContext {
	out := a
	out.Constraints = constraintSpec.clone(a.Constraints)
	out.Weights = weightSpec.clone(a.Weights)
	out.Slacks = slackSpec.clone(a.Slacks)
	out.References = referenceSpec.clone(a.References)
	out.ParameterValues = a.ParameterValues.Clone()
	out.X0 = a.X0.Clone()
	return out
}

// ToMap renders the subtree as a plain mapping.
func (a AcadosContext) ToMap() map[string]any {
	return map[string]any{
		"model": map[string]any{
			"name": a.Model.Name,
		},
		"solver": map[string]any{
			"nlp_solver_type": a.Solver.NLPSolverType,
			"qp_solver":       a.Solver.QPSolver,
			"warmstart_first": a.Solver.WarmstartFirst,
			"warmstart":       a.Solver.Warmstart,
		},
		"constraints":      constraintSpec.toMap(a.Constraints),
		"weights":          weightSpec.toMap(a.Weights),
		"slacks":           slackSpec.toMap(a.Slacks),
		"references":       referenceSpec.toMap(a.References),
		"parameter_values": a.ParameterValues.ToMap(),
		"x0":               a.X0.ToMap(),
	}
}
