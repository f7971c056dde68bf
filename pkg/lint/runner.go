// Package lint aggregates the whole pipeline behind one Runner: file
// reading, view and script analysis, suppression, and the final report.
// The Runner is built once per run; everything it holds is read-only, so
// files validate in parallel without locking.
package lint

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/sourcegraph/conc/pool"

	"github.com/ignition-tooling/ignition-lint/pkg/issue"
	"github.com/ignition-tooling/ignition-lint/pkg/logger"
	"github.com/ignition-tooling/ignition-lint/pkg/schema"
	"github.com/ignition-tooling/ignition-lint/pkg/script"
	"github.com/ignition-tooling/ignition-lint/pkg/suppress"
	"github.com/ignition-tooling/ignition-lint/pkg/view"
)

var log = logger.New("lint:runner")

// Options configures a Runner. Zero values mean strict mode, a style
// severity floor (every finding fails the run), no suppression, and one
// worker per CPU.
type Options struct {
	Mode               schema.Mode
	SeverityFloor      issue.Severity
	GlobalIgnoredCodes []string
	IgnoreEntries      []suppress.Entry
	Naming             view.NamingOptions
	Workers            int
}

// Runner validates sets of view and script files. Safe for concurrent use
// once constructed.
type Runner struct {
	validator *view.Validator
	opts      Options
}

// NewRunner compiles the schema registry and freezes the options. A
// registry failure here is the only hard startup error.
func NewRunner(opts Options) (*Runner, error) {
	registry, err := schema.NewRegistry(opts.Mode)
	if err != nil {
		return nil, fmt.Errorf("building schema registry: %w", err)
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	return &Runner{
		validator: &view.Validator{Registry: registry, Naming: opts.Naming},
		opts:      opts,
	}, nil
}

// SeverityFloor returns the configured pass/fail threshold.
func (r *Runner) SeverityFloor() issue.Severity {
	return r.opts.SeverityFloor
}

type fileResult struct {
	issues     []issue.Issue
	directives *suppress.Directives
	path       string
}

// Run validates every file, applies suppression, and returns the report.
// Files are independent and validate concurrently; results keep input
// order so repeated runs over the same inputs produce identical reports.
func (r *Runner) Run(files []string) *issue.Report {
	results := make([]fileResult, len(files))

	p := pool.New().WithMaxGoroutines(r.opts.Workers)
	for i, path := range files {
		i, path := i, path
		p.Go(func() {
			results[i] = r.lintFile(path)
		})
	}
	p.Wait()

	inline := make(map[string]*suppress.Directives)
	var all []issue.Issue
	for _, res := range results {
		if res.directives != nil {
			inline[res.path] = res.directives
		}
		all = append(all, res.issues...)
	}

	config := suppress.NewConfig(r.opts.GlobalIgnoredCodes, r.opts.IgnoreEntries, inline)
	kept, suppressed := config.Apply(all)

	report := issue.NewReport()
	report.AddAll(kept)
	report.Suppressed = suppressed
	log.Printf("Linted %d files: %d issues, %d suppressed", len(files), len(kept), suppressed)
	return report
}

// lintFile dispatches on file kind. Environment failures become one error
// issue for the file; the run continues.
func (r *Runner) lintFile(path string) fileResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileResult{path: path, issues: []issue.Issue{{
			Severity:   issue.SeverityError,
			Code:       suppress.CodeFileReadError,
			Message:    fmt.Sprintf("Could not read file: %v", err),
			File:       path,
			Suggestion: "Check that the file exists and is readable",
		}}}
	}

	if strings.HasSuffix(path, ".py") {
		return r.lintScriptFile(path, data)
	}
	return r.lintViewFile(path, data)
}

func (r *Runner) lintViewFile(path string, data []byte) fileResult {
	doc, err := view.Decode(path, data)
	if err != nil {
		return fileResult{path: path, issues: []issue.Issue{{
			Severity:   issue.SeverityError,
			Code:       "INVALID_JSON",
			Message:    fmt.Sprintf("Could not parse view document: %v", err),
			File:       path,
			Suggestion: "Fix the JSON syntax; the designer writes strict JSON",
		}}}
	}
	return fileResult{path: path, issues: r.validator.Validate(doc)}
}

func (r *Runner) lintScriptFile(path string, data []byte) fileResult {
	if !utf8.Valid(data) {
		return fileResult{path: path, issues: []issue.Issue{{
			Severity:   issue.SeverityError,
			Code:       suppress.CodeFileReadError,
			Message:    "File is not valid UTF-8",
			File:       path,
			Suggestion: "Re-save the script with UTF-8 encoding",
		}}}
	}
	text := string(data)
	return fileResult{
		path:       path,
		issues:     script.AnalyzeFile(path, text),
		directives: suppress.ExtractDirectives(text),
	}
}
