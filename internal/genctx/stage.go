package genctx

import "strings"

// Stage identifies the position of a field within the receding horizon.
type Stage int

const (
	// StageInterior covers every stage between the first and the last.
	StageInterior Stage = iota
	// StageInitial is the first stage, marked by the "_0" suffix.
	StageInitial
	// StageTerminal is the last stage, marked by the "_e" suffix.
	StageTerminal
)

const (
	initialSuffix  = "_0"
	terminalSuffix = "_e"
)

// String returns the lower-case stage name.
func (s Stage) String() string {
	switch s {
	case StageInitial:
		return "initial"
	case StageTerminal:
		return "terminal"
	default:
		return "stage"
	}
}

// StageOf classifies a field key by its suffix.
func StageOf(key string) Stage {
	switch {
	case strings.HasSuffix(key, initialSuffix):
		return StageInitial
	case strings.HasSuffix(key, terminalSuffix):
		return StageTerminal
	default:
		return StageInterior
	}
}

// StageFlags summarizes which stage buckets of a group carry values.
// The flags are derived by Derive and never read back from input.
type StageFlags struct {
	HasInit  bool `yaml:"has_init"`
	HasStage bool `yaml:"has_stage"`
	HasTerm  bool `yaml:"has_term"`
}

// mark sets the flag of the given stage when present is true.
func (f *StageFlags) mark(stage Stage, present bool) {
	if !present {
		return
	}
	switch stage {
	case StageInitial:
		f.HasInit = true
	case StageTerminal:
		f.HasTerm = true
	default:
		f.HasStage = true
	}
}

func (f StageFlags) toMap(out map[string]any) {
	out["has_init"] = f.HasInit
	out["has_stage"] = f.HasStage
	out["has_term"] = f.HasTerm
}
