package cli

import (
	"fmt"
	"strings"

	"github.com/ignition-tooling/ignition-lint/pkg/lint"
	"github.com/ignition-tooling/ignition-lint/pkg/logger"
	"github.com/spf13/cobra"
)

var viewsLog = logger.New("cli:views_command")

// NewViewsCommand creates the views command
func NewViewsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "views [path]...",
		Short: "Validate Perspective view.json files",
		Long: `Validate one or more Perspective view.json files. Directories are searched
recursively for view.json files.

Checks component types against embedded schemas, property structure,
bindings and transforms, embedded scripts, naming conventions, and unused
custom properties.

Examples:
  ignition-lint views views/Dashboard/view.json   # Validate a single view
  ignition-lint views views/                      # Validate a directory tree
  ignition-lint views --mode strict views/        # Reject non-schema types
  ignition-lint views --json views/               # Output results in JSON format`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			viewsLog.Printf("Running views command: paths=%v", args)
			files, err := expandViewPaths(args)
			if err != nil {
				return err
			}
			runner, err := buildRunner(cmd)
			if err != nil {
				return err
			}
			return emitReport(cmd, runner.Run(files), runner.SeverityFloor())
		},
	}

	addLintFlags(cmd)
	return cmd
}

func expandViewPaths(args []string) ([]string, error) {
	files, err := lint.ExpandPaths(args)
	if err != nil {
		return nil, err
	}
	views := files[:0]
	for _, f := range files {
		if strings.HasSuffix(f, "view.json") {
			views = append(views, f)
		}
	}
	if len(views) == 0 {
		return nil, fmt.Errorf("no view.json files found under %s", strings.Join(args, ", "))
	}
	return views, nil
}
