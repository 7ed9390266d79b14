package cli

import (
	"github.com/spf13/cobra"

	"github.com/ros-acados/nodegen/internal/genctx"
	"github.com/ros-acados/nodegen/internal/generator"
)

// newDefaultsCommand creates the "defaults" subcommand that prints the schema
// defaults, a starting point for a descriptor.
func newDefaultsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the default generation context",
		RunE: func(cmd *cobra.Command, _ []string) error {
			outFormat, err := parseFormat(format)
			if err != nil {
				return err
			}
			tree := genctx.Derive(genctx.Default()).ToMap()
			return generator.NewWriterEmitter(cmd.OutOrStdout(), outFormat).Emit(cmd.Context(), tree)
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "Output format (yaml, json)")

	return cmd
}
