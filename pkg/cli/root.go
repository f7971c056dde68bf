package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand assembles the ignition-lint command tree.
func NewRootCommand(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ignition-lint",
		Short: "Linter for Ignition Perspective views and Jython scripts",
		Long: `ignition-lint validates Ignition Perspective view.json files and Jython
script libraries: component types and property structure against embedded
schemas, bindings and transforms, embedded and standalone scripts, naming
conventions, and project-level hygiene.

Run 'ignition-lint <command> --help' for details on each command.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewViewsCommand())
	cmd.AddCommand(NewScriptsCommand())
	cmd.AddCommand(NewProjectCommand())
	cmd.AddCommand(NewServeCommand(version))
	return cmd
}
