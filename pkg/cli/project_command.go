package cli

import (
	"fmt"

	"github.com/ignition-tooling/ignition-lint/pkg/lint"
	"github.com/ignition-tooling/ignition-lint/pkg/logger"
	"github.com/spf13/cobra"
)

var projectLog = logger.New("cli:project_command")

// NewProjectCommand creates the project command
func NewProjectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project [root]",
		Short: "Validate an entire Ignition project",
		Long: `Validate every Perspective view and script library in an Ignition project
directory. Views are discovered under
com.inductiveautomation.perspective/views and scripts under
ignition/script-python.

With --watch the command keeps running and re-validates whenever a view or
script file changes.

Examples:
  ignition-lint project                      # Validate the current directory
  ignition-lint project ~/projects/plant     # Validate a project by path
  ignition-lint project --watch              # Re-run on file changes
  ignition-lint project --json > report.json # Machine-readable report`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			projectLog.Printf("Running project command: root=%s", root)

			runner, err := buildRunner(cmd)
			if err != nil {
				return err
			}

			watch, _ := cmd.Flags().GetBool("watch")
			if watch {
				return watchProject(cmd, runner, root)
			}

			files, err := lint.DiscoverProject(root)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no views or scripts found under %s", root)
			}
			return emitReport(cmd, runner.Run(files), runner.SeverityFloor())
		},
	}

	addLintFlags(cmd)
	cmd.Flags().Bool("watch", false, "Keep running and re-validate on file changes")
	return cmd
}
