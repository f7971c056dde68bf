package cli

import (
	"fmt"
	"strings"

	"github.com/ignition-tooling/ignition-lint/pkg/lint"
	"github.com/ignition-tooling/ignition-lint/pkg/logger"
	"github.com/spf13/cobra"
)

var scriptsLog = logger.New("cli:scripts_command")

// NewScriptsCommand creates the scripts command
func NewScriptsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scripts [path]...",
		Short: "Validate standalone Jython script files",
		Long: `Validate one or more Jython script files. Directories are searched
recursively for .py files.

Parses each script as legacy Python, checks docstrings, line length,
deprecated constructs, system.* calls against the scripting catalog, and
Java interop imports.

Examples:
  ignition-lint scripts ignition/script-python/      # Validate a script library
  ignition-lint scripts util.py alarms.py            # Validate specific files
  ignition-lint scripts --severity warning scripts/  # Fail on warnings too
  ignition-lint scripts --json scripts/              # Output results in JSON format`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scriptsLog.Printf("Running scripts command: paths=%v", args)
			files, err := expandScriptPaths(args)
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

func expandScriptPaths(args []string) ([]string, error) {
	files, err := lint.ExpandPaths(args)
	if err != nil {
		return nil, err
	}
	scripts := files[:0]
	for _, f := range files {
		if strings.HasSuffix(f, ".py") {
			scripts = append(scripts, f)
		}
	}
	if len(scripts) == 0 {
		return nil, fmt.Errorf("no .py files found under %s", strings.Join(args, ", "))
	}
	return scripts, nil
}
