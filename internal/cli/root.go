// Package cli defines the command-line interface for nodegen.
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ros-acados/nodegen/internal/logging"
)

// Options stores global CLI options shared between commands.
type Options struct {
	// ConfigPath is the package/node descriptor; empty means schema defaults.
	ConfigPath string
	// SolverPath is the solver export file or directory.
	SolverPath string
	LogLevel   logging.Level
}

// Execute builds the root command, runs it with the provided args and logger, and returns any error.
func Execute(args []string, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewLogger(os.Stderr, logging.LevelInfo)
	}

	rootOpts := &Options{
		LogLevel: logging.LevelInfo,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCommand(rootOpts, logger)
	rootCmd.SetArgs(args)

	return rootCmd.ExecuteContext(ctx)
}

// newRootCommand constructs the root cobra.Command with global flags and subcommands.
func newRootCommand(opts *Options, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "nodegen",
		Short:         "nodegen builds the generation context for acados ROS nodes",
		Long:          "nodegen merges an acados solver export, a package/node descriptor and key.path=value overrides into one validated context tree for the ROS node templates.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			envCfg, err := parseEnv[baseEnv]()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("config") && envPresent("NODEGEN_CONFIG") {
				opts.ConfigPath = envCfg.ConfigPath
			}
			if !cmd.Flags().Changed("solver") && envPresent("NODEGEN_SOLVER") {
				opts.SolverPath = envCfg.SolverPath
			}
			levelName := cmd.Flag("log-level").Value.String()
			if !cmd.Flags().Changed("log-level") && envPresent("NODEGEN_LOG_LEVEL") {
				levelName = envCfg.LogLevel
			}

			level := logging.ParseLevel(levelName)
			opts.LogLevel = level
			logger = logging.NewLogger(cmd.ErrOrStderr(), level)
			cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, logger))
			logger.Debug("logger initialized", "level", slog.Level(level))
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to the package/node descriptor (YAML or JSON)")
	cmd.PersistentFlags().StringVarP(&opts.SolverPath, "solver", "s", "", "Path to the acados solver export JSON, or a directory holding it")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newGenerateCommand(opts),
		newDefaultsCommand(),
		newValidateCommand(opts),
	)

	return cmd
}

// loggerKey is a private context key used to store a logger in command contexts.
type loggerKey struct{}

// LoggerFromContext extracts a logger from the context or falls back to a default logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return logging.NewLogger(os.Stderr, logging.LevelInfo)
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return logging.NewLogger(os.Stderr, logging.LevelInfo)
}
