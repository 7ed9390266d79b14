package cli

import (
	"os"
	"strings"

	envparse "github.com/caarlos0/env/v11"
)

// baseEnv defines CLI defaults sourced from NODEGEN_* env vars. A flag given
// on the command line always wins over its env var.
type baseEnv struct {
	// SolverPath is the solver export file or directory from NODEGEN_SOLVER.
	SolverPath string `env:"NODEGEN_SOLVER"`
	// ConfigPath is the descriptor path from NODEGEN_CONFIG.
	ConfigPath string `env:"NODEGEN_CONFIG"`
	// LogLevel is the logging level from NODEGEN_LOG_LEVEL.
	LogLevel string `env:"NODEGEN_LOG_LEVEL"`
}

// generateEnv captures NODEGEN_* inputs for the generate command.
type generateEnv struct {
	// Output is the output file from NODEGEN_OUTPUT.
	Output string `env:"NODEGEN_OUTPUT"`
	// Format is the output format from NODEGEN_FORMAT.
	Format string `env:"NODEGEN_FORMAT"`
	// ScriptPath is the solver script path from NODEGEN_SCRIPT_PATH.
	ScriptPath string `env:"NODEGEN_SCRIPT_PATH"`
	// Set is a ';'-separated list of key.path=value overrides from NODEGEN_SET.
	// Commas are left alone so JSON values such as [1,2] survive.
	Set []string `env:"NODEGEN_SET" envSeparator:";"`
	// SetFiles is a ';'-separated list of override files from NODEGEN_SET_FILE.
	SetFiles []string `env:"NODEGEN_SET_FILE" envSeparator:";"`
}

// parseEnv reads NODEGEN_* env vars into a T via caarlos0/env.
func parseEnv[T any]() (T, error) {
	return envparse.ParseAs[T]()
}

// envPresent reports whether a non-empty env var exists.
func envPresent(key string) bool {
	val, ok := os.LookupEnv(key)
	if !ok {
		return false
	}
	return strings.TrimSpace(val) != ""
}

// nonEmpty drops blank entries from an env-provided list.
func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, strings.TrimSpace(v))
		}
	}
	return out
}
