// Legacy-syntax preprocessing. The embedded runtime speaks Python 2, while
// the parsing grammar is Python 3; these rewrites keep valid legacy code
// from tripping spurious syntax errors without hiding genuine ones.
package script

import (
	"regexp"
	"strings"
)

var (
	printRedirectArgsRe = regexp.MustCompile(`(?m)^(\s*)print[ \t]*>>[ \t]*(\S+)[ \t]*,[ \t]*(.+)$`)
	printRedirectRe     = regexp.MustCompile(`(?m)^(\s*)print[ \t]*>>[ \t]*(\S+)[ \t]*$`)
	printStatementRe    = regexp.MustCompile(`(?m)^(\s*)print[ \t]+([^>(].*)$`)
	exceptCommaRe       = regexp.MustCompile(`(?m)^(\s*except[ \t]+[\w.]+)[ \t]*,[ \t]*(\w+)[ \t]*:`)
	raiseCommaRe        = regexp.MustCompile(`(?m)^(\s*raise[ \t]+[\w.]+)[ \t]*,[ \t]*(.+)$`)
)

// normalizeLegacySyntax rewrites Python 2 constructs to the Python 3 forms
// the grammar accepts. Line count is preserved so reported positions stay
// valid against the original text.
func normalizeLegacySyntax(source string) string {
	source = printRedirectArgsRe.ReplaceAllString(source, `${1}print(${3}, file=${2})`)
	source = printRedirectRe.ReplaceAllString(source, `${1}print(file=${2})`)
	source = printStatementRe.ReplaceAllString(source, `${1}print(${2})`)
	source = exceptCommaRe.ReplaceAllString(source, `${1} as ${2}:`)
	source = raiseCommaRe.ReplaceAllString(source, `${1}(${2})`)
	return source
}

// dedent strips the longest common leading whitespace from every non-blank
// line, the way embedded fragments are stored with one level of base
// indentation.
func dedent(source string) string {
	lines := strings.Split(source, "\n")

	prefix := ""
	first := true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			prefix = indent
			first = false
			continue
		}
		for !strings.HasPrefix(indent, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
		if prefix == "" {
			return source
		}
	}
	if prefix == "" {
		return source
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = strings.TrimPrefix(line, prefix)
	}
	return strings.Join(lines, "\n")
}
