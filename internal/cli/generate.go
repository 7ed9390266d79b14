package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ros-acados/nodegen/internal/descriptor"
	"github.com/ros-acados/nodegen/internal/generator"
)

// newGenerateCommand creates the "generate" subcommand that builds the context
// tree and writes it for the template engine.
func newGenerateCommand(opts *Options) *cobra.Command {
	var (
		sets       []string
		setFiles   []string
		scriptPath string
		output     string
		format     string
		watch      bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build the node generation context and write it as YAML or JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			envCfg, err := parseEnv[generateEnv]()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("set") && envPresent("NODEGEN_SET") {
				sets = nonEmpty(envCfg.Set)
			}
			if !cmd.Flags().Changed("set-file") && envPresent("NODEGEN_SET_FILE") {
				setFiles = nonEmpty(envCfg.SetFiles)
			}
			if !cmd.Flags().Changed("script-path") && envPresent("NODEGEN_SCRIPT_PATH") {
				scriptPath = envCfg.ScriptPath
			}
			if !cmd.Flags().Changed("output") && envPresent("NODEGEN_OUTPUT") {
				output = envCfg.Output
			}
			if !cmd.Flags().Changed("format") && envPresent("NODEGEN_FORMAT") {
				format = envCfg.Format
			}

			outFormat, err := parseFormat(format)
			if err != nil {
				return err
			}

			var emitter generator.Emitter
			if strings.TrimSpace(output) == "" || output == "-" {
				if outFormat == "" {
					outFormat = descriptor.FormatYAML
				}
				emitter = generator.NewWriterEmitter(cmd.OutOrStdout(), outFormat)
			} else {
				emitter = generator.NewFileEmitter(output, outFormat)
			}

			req := generator.Request{
				SolverPath:     opts.SolverPath,
				DescriptorPath: opts.ConfigPath,
				ScriptPath:     scriptPath,
				OverrideFiles:  setFiles,
				Overrides:      sets,
			}
			if watch {
				logger.Info("watching inputs, press Ctrl+C to stop")
				return generator.Watch(cmd.Context(), req, emitter, logger, generator.DefaultDebounce)
			}

			res, err := generator.Run(cmd.Context(), req, emitter, logger)
			if err != nil {
				return err
			}

			if output != "" && output != "-" {
				logger.Info("context written", "path", output, "request_id", res.RequestID, "warnings", len(res.Warnings))
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Override in key.path=value form (repeatable)")
	cmd.Flags().StringArrayVar(&setFiles, "set-file", nil, "File of key.path=value lines (repeatable)")
	cmd.Flags().StringVar(&scriptPath, "script-path", "", "Solver script path recorded as script_path")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file for the context (if empty, prints to stdout)")
	cmd.Flags().StringVar(&format, "format", "", "Output format (yaml, json); defaults to the output file extension")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Regenerate whenever the descriptor, solver export or override files change")

	return cmd
}

// parseFormat validates a --format value. An empty value is returned as-is.
func parseFormat(value string) (descriptor.Format, error) {
	switch f := descriptor.Format(strings.ToLower(strings.TrimSpace(value))); f {
	case "", descriptor.FormatYAML, descriptor.FormatJSON:
		return f, nil
	case "yml":
		return descriptor.FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected yaml or json)", value)
	}
}
