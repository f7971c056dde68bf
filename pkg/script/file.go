// Standalone script analysis for project library files. Unlike embedded
// fragments these are whole modules, so the indentation precondition does
// not apply; the parser catches real indentation errors.
package script

import (
	"fmt"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/ignition-tooling/ignition-lint/pkg/issue"
)

const maxLineLength = 120

var (
	stringTypesRe     = regexp.MustCompile(`\bbasestring\b|\bunicode\b`)
	xrangeRe          = regexp.MustCompile(`\bxrange\b`)
	iterItemsRe       = regexp.MustCompile(`\.(iteritems|iterkeys|itervalues)\(\)`)
	hasKeyRe          = regexp.MustCompile(`\.has_key\(`)
	systemOverrideRe  = regexp.MustCompile(`^\s*system\s*=`)
	hardcodedHostRe   = regexp.MustCompile(`localhost:8088|127\.0\.0\.1:8088|localhost:5432|127\.0\.0\.1:5432`)
	debugPrintRe      = regexp.MustCompile(`\bprint\s*\(.*(debug|DEBUG).*\)`)
	globalStatementRe = regexp.MustCompile(`^\s*global\s+\w+`)
	javaImportLineRe  = regexp.MustCompile(`^from\s+(java\.|javax\.|com\.|org\.)\w+`)
)

// AnalyzeFile runs every standalone-script check over a project library
// file. The caller supplies the decoded text; an unreadable file is the
// caller's FILE_READ_ERROR.
func AnalyzeFile(path, text string) []issue.Issue {
	var issues []issue.Issue
	at := func(sev issue.Severity, code, msg, suggestion string, line int) {
		issues = append(issues, issue.Issue{
			Severity:   sev,
			Code:       code,
			Message:    msg,
			File:       path,
			Line:       line,
			Suggestion: suggestion,
		})
	}

	lines := strings.Split(text, "\n")
	fctx := Context{File: path}

	normalized := normalizeLegacySyntax(text)
	tree, serr, perr := parsePython([]byte(normalized))
	if tree != nil {
		defer tree.Close()
	}
	switch {
	case perr != nil:
		at(issue.SeverityError, "JYTHON_PARSE_ERROR",
			fmt.Sprintf("Could not parse script: %v", perr),
			"Check the script for structural problems", 0)
	case serr != nil:
		issues = append(issues, issue.Issue{
			Severity:   issue.SeverityError,
			Code:       "JYTHON_SYNTAX_ERROR",
			Message:    fmt.Sprintf("Python syntax error: %s", serr.Message),
			File:       path,
			Line:       serr.Line,
			Column:     serr.Column,
			Suggestion: fmt.Sprintf("Fix syntax near line %d", serr.Line),
		})
	default:
		issues = append(issues, checkDocstrings(tree.RootNode(), []byte(normalized), path)...)
	}

	javaImports := 0
	for index, line := range lines {
		num := index + 1

		if len(line) > maxLineLength {
			at(issue.SeverityStyle, "LONG_LINE",
				fmt.Sprintf("Line too long (%d characters, recommend < %d)", len(line), maxLineLength),
				"Break long lines for readability", num)
		}

		if printStmtScanRe.MatchString(line) {
			at(issue.SeverityWarning, "JYTHON_PRINT_STATEMENT",
				"Legacy print statement found",
				"Change 'print x' to 'print(x)'", num)
		}
		if xrangeRe.MatchString(line) {
			at(issue.SeverityInfo, "JYTHON_XRANGE_USAGE",
				"xrange() found; consider range() for consistency", "", num)
		}
		if iterItemsRe.MatchString(line) {
			at(issue.SeverityWarning, "JYTHON_DEPRECATED_ITERITEMS",
				"Deprecated dict iterator method; use items()/keys()/values()",
				"Replace .iteritems() style calls with their plain equivalents", num)
		}
		if hasKeyRe.MatchString(line) {
			at(issue.SeverityWarning, "JYTHON_HAS_KEY_USAGE",
				"dict.has_key() is deprecated; use the 'in' operator",
				"Replace d.has_key(k) with k in d", num)
		}
		if stringTypesRe.MatchString(line) {
			at(issue.SeverityWarning, "JYTHON_STRING_TYPES",
				"basestring/unicode types found; may cause compatibility issues",
				"Use str type checks for better compatibility", num)
		}
		if systemOverrideRe.MatchString(line) {
			at(issue.SeverityError, "IGNITION_SYSTEM_OVERRIDE",
				"Assigning to 'system' shadows the platform scripting module",
				"Rename the variable to avoid the conflict", num)
		}
		if hardcodedHostRe.MatchString(line) {
			at(issue.SeverityWarning, "IGNITION_HARDCODED_GATEWAY",
				"Hardcoded gateway or database host found",
				"Read the host from system properties or configuration", num)
		}
		if debugPrintRe.MatchString(line) {
			at(issue.SeverityInfo, "IGNITION_DEBUG_PRINT",
				"Debug print statement found; consider a logger instead",
				"Use system.util.getLogger() for proper logging", num)
		}
		if globalStatementRe.MatchString(line) {
			at(issue.SeverityWarning, "GLOBAL_VARIABLE_USAGE",
				"Global variable usage detected",
				"Use function parameters or module-level constants instead", num)
		}
		if javaImportLineRe.MatchString(strings.TrimSpace(line)) {
			javaImports++
		}
	}

	if javaImports > 0 {
		at(issue.SeverityInfo, "JAVA_INTEGRATION_DETECTED",
			fmt.Sprintf("Java imports detected (%d imports)", javaImports),
			"Confirm the classes are available on the gateway classpath", 0)
	}

	issues = append(issues, checkSystemCalls(text, fctx, 0)...)
	issues = append(issues, checkJavaImports(text, fctx)...)
	return issues
}

// checkDocstrings flags public functions whose body does not open with a
// docstring. Leading-underscore names are treated as private.
func checkDocstrings(root *sitter.Node, content []byte, path string) []issue.Issue {
	var issues []issue.Issue
	walkTree(root, func(node *sitter.Node) {
		if node.Type() != "function_definition" {
			return
		}
		nameNode := node.ChildByFieldName("name")
		if nameNode == nil {
			return
		}
		name := string(content[nameNode.StartByte():nameNode.EndByte()])
		if strings.HasPrefix(name, "_") {
			return
		}
		if !functionDocstring(node) {
			issues = append(issues, issue.Issue{
				Severity:   issue.SeverityStyle,
				Code:       "MISSING_DOCSTRING",
				Message:    fmt.Sprintf("Function %q missing docstring", name),
				File:       path,
				Line:       int(node.StartPoint().Row) + 1,
				Suggestion: "Add a docstring describing purpose and parameters",
			})
		}
	})
	return issues
}
