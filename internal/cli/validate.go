package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ros-acados/nodegen/internal/descriptor"
)

// newValidateCommand creates the "validate" subcommand that checks a
// descriptor without importing a solver export or writing output.
func newValidateCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [descriptor]",
		Short: "Check a package/node descriptor against the schema",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := LoggerFromContext(cmd.Context())

			path := opts.ConfigPath
			if len(args) == 1 {
				path = args[0]
			}
			if strings.TrimSpace(path) == "" {
				return fmt.Errorf("validate requires a descriptor argument, --config or NODEGEN_CONFIG env")
			}

			root, err := descriptor.LoadFile(path)
			if err != nil {
				return err
			}
			logger.Info("descriptor is valid", "path", path, "package", root.Package.Name, "node", root.Ros.NodeName)
			return nil
		},
	}
}
