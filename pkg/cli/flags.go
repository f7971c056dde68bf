package cli

import (
	"fmt"
	"os"

	"github.com/ignition-tooling/ignition-lint/pkg/issue"
	"github.com/ignition-tooling/ignition-lint/pkg/lint"
	"github.com/ignition-tooling/ignition-lint/pkg/logger"
	"github.com/ignition-tooling/ignition-lint/pkg/schema"
	"github.com/ignition-tooling/ignition-lint/pkg/suppress"
	"github.com/ignition-tooling/ignition-lint/pkg/view"
	"github.com/spf13/cobra"
)

var flagsLog = logger.New("cli:flags")

// addLintFlags registers the flags shared by every linting command.
func addLintFlags(cmd *cobra.Command) {
	cmd.Flags().String("mode", "curated", "Component type acceptance mode (strict, curated, permissive)")
	cmd.Flags().String("severity", "error", "Minimum severity that fails the run (style, info, warning, error)")
	cmd.Flags().String("ignore", "", "Comma-separated rule codes to suppress globally")
	cmd.Flags().String("ignore-file", "", "Path to the ignore file (default: "+suppressIgnoreFile+")")
	cmd.Flags().String("profile", "", "Path to a profile file (default: "+DefaultProfileFile+")")
	cmd.Flags().String("component-naming", "PascalCase", "Naming style for component names (snake_case, camelCase, PascalCase, UPPER_CASE, Title Case, any)")
	cmd.Flags().String("parameter-naming", "camelCase", "Naming style for custom and param keys")
	cmd.Flags().String("naming-regex", "", "Custom regex overriding the component naming style")
	cmd.Flags().Bool("allow-acronyms", false, "Allow leading acronyms in PascalCase and camelCase names")
	cmd.Flags().IntP("workers", "w", 0, "Number of parallel workers (default: one per CPU)")
	cmd.Flags().BoolP("json", "j", false, "Output the report in JSON format")
}

const suppressIgnoreFile = ".ignitionlintignore"

// stringSetting resolves a flag against its profile counterpart: a flag the
// user set wins, then the profile, then the flag default.
func stringSetting(cmd *cobra.Command, name, profileValue string) string {
	value, _ := cmd.Flags().GetString(name)
	if !cmd.Flags().Changed(name) && profileValue != "" {
		return profileValue
	}
	return value
}

// buildOptions resolves flags and profile into runner options.
func buildOptions(cmd *cobra.Command) (lint.Options, error) {
	profilePath, _ := cmd.Flags().GetString("profile")
	profile, err := LoadProfile(profilePath)
	if err != nil {
		return lint.Options{}, err
	}

	mode, err := schema.ParseMode(stringSetting(cmd, "mode", profile.Mode))
	if err != nil {
		return lint.Options{}, err
	}

	floor, err := issue.ParseSeverity(stringSetting(cmd, "severity", profile.Severity))
	if err != nil {
		return lint.Options{}, err
	}

	ignored := profile.IgnoredCodes
	if list, _ := cmd.Flags().GetString("ignore"); list != "" {
		ignored = append(ignored, suppress.ParseGlobalCodes(list)...)
	}

	entries, err := loadIgnoreEntries(stringSetting(cmd, "ignore-file", profile.IgnoreFile))
	if err != nil {
		return lint.Options{}, err
	}

	naming, err := buildNaming(cmd, profile)
	if err != nil {
		return lint.Options{}, err
	}

	workers, _ := cmd.Flags().GetInt("workers")
	if workers == 0 {
		workers = profile.Workers
	}

	flagsLog.Printf("Resolved options: mode=%s, floor=%s, ignored=%d codes, %d ignore entries",
		mode, floor, len(ignored), len(entries))

	return lint.Options{
		Mode:               mode,
		SeverityFloor:      floor,
		GlobalIgnoredCodes: ignored,
		IgnoreEntries:      entries,
		Naming:             naming,
		Workers:            workers,
	}, nil
}

// loadIgnoreEntries parses the ignore file. The default file is optional; a
// path the user named must exist.
func loadIgnoreEntries(path string) ([]suppress.Entry, error) {
	explicit := path != ""
	if !explicit {
		path = suppressIgnoreFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil, nil
		}
		return nil, fmt.Errorf("reading ignore file %s: %w", path, err)
	}
	return suppress.ParseIgnoreFile(string(data)), nil
}

func buildNaming(cmd *cobra.Command, profile *Profile) (view.NamingOptions, error) {
	allowAcronyms, _ := cmd.Flags().GetBool("allow-acronyms")
	if !cmd.Flags().Changed("allow-acronyms") {
		allowAcronyms = allowAcronyms || profile.AllowAcronyms
	}
	customRegex := stringSetting(cmd, "naming-regex", profile.NamingRegex)

	components, err := view.NewStyleChecker(stringSetting(cmd, "component-naming", profile.ComponentNaming), allowAcronyms, customRegex)
	if err != nil {
		return view.NamingOptions{}, fmt.Errorf("component naming: %w", err)
	}
	parameters, err := view.NewStyleChecker(stringSetting(cmd, "parameter-naming", profile.ParameterNaming), allowAcronyms, "")
	if err != nil {
		return view.NamingOptions{}, fmt.Errorf("parameter naming: %w", err)
	}
	return view.NamingOptions{Components: components, Parameters: parameters}, nil
}

// buildRunner constructs a runner from the command's resolved options.
func buildRunner(cmd *cobra.Command) (*lint.Runner, error) {
	opts, err := buildOptions(cmd)
	if err != nil {
		return nil, err
	}
	return lint.NewRunner(opts)
}
