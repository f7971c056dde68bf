// Package suppress decides which lint issues stay out of the final report.
//
// Three independently configured mechanisms feed one read-only Config:
//
//  1. a global ignored-code set (CLI flag, comma-separated),
//  2. an ignore file of gitignore-style glob patterns, each optionally
//     qualified with a code list (pattern:CODE1,CODE2),
//  3. inline directives extracted textually from standalone script files.
//
// The resolver is one pure function over (issue, config): any single
// mechanism matching is enough to suppress. Suppressed issues are dropped
// from the report but counted, never silently lost.
package suppress

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ignition-tooling/ignition-lint/pkg/issue"
	"github.com/ignition-tooling/ignition-lint/pkg/logger"
)

var log = logger.New("suppress:resolver")

// CodeFileReadError marks a file that could not be read or decoded. It can
// never be suppressed inline: the directive would have to live in content
// that was never successfully read.
const CodeFileReadError = "FILE_READ_ERROR"

// Entry is one parsed ignore-file line: a glob pattern plus an optional code
// set. An empty code set suppresses every code for matching paths.
type Entry struct {
	Pattern string
	Codes   map[string]bool
}

// Config is the merged, read-only view of all three suppression sources.
// Build it once per run before resolving any issue.
type Config struct {
	global  map[string]bool
	entries []Entry
	inline  map[string]*Directives
}

// NewConfig builds a Config from a global ignored-code list, parsed ignore
// file entries, and per-file inline directives keyed by file path.
func NewConfig(globalCodes []string, entries []Entry, inline map[string]*Directives) *Config {
	global := make(map[string]bool, len(globalCodes))
	for _, code := range globalCodes {
		code = strings.TrimSpace(code)
		if code != "" {
			global[code] = true
		}
	}
	if inline == nil {
		inline = map[string]*Directives{}
	}
	return &Config{global: global, entries: entries, inline: inline}
}

// ShouldSuppress reports whether the issue is suppressed by any mechanism.
// It is side-effect-free and safe for concurrent use.
func (c *Config) ShouldSuppress(iss issue.Issue) bool {
	if c == nil {
		return false
	}
	if c.global[iss.Code] {
		return true
	}
	if c.matchesIgnoreFile(iss) {
		return true
	}
	return c.matchesInline(iss)
}

// Apply filters a list of issues, returning the kept issues in their
// original order plus the number suppressed. Applying it again to its own
// output with the same config suppresses nothing further.
func (c *Config) Apply(issues []issue.Issue) ([]issue.Issue, int) {
	kept := make([]issue.Issue, 0, len(issues))
	suppressed := 0
	for _, iss := range issues {
		if c.ShouldSuppress(iss) {
			suppressed++
			continue
		}
		kept = append(kept, iss)
	}
	if suppressed > 0 {
		log.Printf("Suppressed %d of %d issues", suppressed, len(issues))
	}
	return kept, suppressed
}

// matchesIgnoreFile checks the issue's file against every entry. All matching
// entries stack: their code sets union together rather than first-match-wins,
// so adding a qualified entry can never shadow a broader one.
func (c *Config) matchesIgnoreFile(iss issue.Issue) bool {
	if iss.File == "" {
		return false
	}
	for _, entry := range c.entries {
		if !matchesPath(entry.Pattern, iss.File) {
			continue
		}
		if len(entry.Codes) == 0 {
			return true
		}
		if entry.Codes[iss.Code] {
			return true
		}
	}
	return false
}

func (c *Config) matchesInline(iss issue.Issue) bool {
	if iss.Code == CodeFileReadError {
		return false
	}
	d, ok := c.inline[iss.File]
	if !ok || d == nil {
		return false
	}
	if d.fileWide[iss.Code] {
		return true
	}
	if iss.Line > 0 {
		if codes, ok := d.byLine[iss.Line]; ok && codes[iss.Code] {
			return true
		}
	}
	return false
}

// matchesPath applies gitignore-style matching: a pattern without a slash
// matches the base name at any depth, a pattern with a slash matches against
// the slash-normalized path, and a pattern naming a directory suppresses
// everything beneath it.
func matchesPath(pattern, path string) bool {
	path = filepath.ToSlash(path)
	pattern = strings.TrimPrefix(pattern, "/")
	if pattern == "" {
		return false
	}

	if !strings.Contains(pattern, "/") {
		if ok, _ := doublestar.Match(pattern, filepath.Base(path)); ok {
			return true
		}
		if ok, _ := doublestar.Match("**/"+pattern+"/**", path); ok {
			return true
		}
		return false
	}

	if ok, _ := doublestar.Match(pattern, path); ok {
		return true
	}
	if ok, _ := doublestar.Match("**/"+pattern, path); ok {
		return true
	}
	if ok, _ := doublestar.Match(pattern+"/**", path); ok {
		return true
	}
	if ok, _ := doublestar.Match("**/"+pattern+"/**", path); ok {
		return true
	}
	return false
}

var codeListRe = regexp.MustCompile(`^[A-Za-z0-9_]+(?:\s*,\s*[A-Za-z0-9_]+)*$`)

// ParseIgnoreFile parses ignore-file content. Each non-blank, non-comment
// line is a glob pattern with an optional ":CODE1,CODE2" qualifier. A suffix
// that does not look like a code list stays part of the pattern.
func ParseIgnoreFile(content string) []Entry {
	var entries []Entry
	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		pattern := line
		var codes map[string]bool
		if idx := strings.LastIndex(line, ":"); idx > 0 {
			suffix := strings.TrimSpace(line[idx+1:])
			if codeListRe.MatchString(suffix) {
				pattern = strings.TrimSpace(line[:idx])
				codes = make(map[string]bool)
				for _, code := range strings.Split(suffix, ",") {
					codes[strings.TrimSpace(code)] = true
				}
			}
		}
		if pattern == "" {
			continue
		}
		entries = append(entries, Entry{Pattern: pattern, Codes: codes})
	}
	return entries
}

// ParseGlobalCodes splits a comma-separated rule-code list.
func ParseGlobalCodes(list string) []string {
	if strings.TrimSpace(list) == "" {
		return nil
	}
	parts := strings.Split(list, ",")
	codes := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			codes = append(codes, p)
		}
	}
	return codes
}
