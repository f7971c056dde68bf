package cli

import (
	"errors"
	"fmt"

	"github.com/ignition-tooling/ignition-lint/pkg/console"
	"github.com/ignition-tooling/ignition-lint/pkg/issue"
	"github.com/spf13/cobra"
)

// ErrLintFailed signals that the run produced findings at or above the
// severity floor. The report has already been printed when it is returned;
// main maps it to a non-zero exit without an extra error line.
var ErrLintFailed = errors.New("lint failed")

// emitReport prints the report in the requested format and converts the
// pass/fail verdict into the command result.
func emitReport(cmd *cobra.Command, report *issue.Report, floor issue.Severity) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		data, err := console.RenderJSON(report)
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
	} else {
		fmt.Fprint(cmd.OutOrStdout(), console.RenderText(report, floor))
	}
	if !report.Passed(floor) {
		return ErrLintFailed
	}
	return nil
}
