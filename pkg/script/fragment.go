// Embedded fragment analysis for the scripts stored inside view documents:
// binding transforms, onChange handlers, and component event handlers.
//
// Fragments are stored with at least one level of base indentation because
// the runtime splices them into a generated function body. A line without
// any indentation is therefore a hard error, not a style nit.
package script

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ignition-tooling/ignition-lint/pkg/issue"
)

// Origin says where a fragment came from; a few findings word their
// suggestion differently for transforms versus event handlers.
type Origin int

const (
	OriginTransform Origin = iota
	OriginEventHandler
	OriginOnChange
)

func (o Origin) String() string {
	switch o {
	case OriginTransform:
		return "transform"
	case OriginEventHandler:
		return "event handler"
	case OriginOnChange:
		return "onChange handler"
	}
	return "script"
}

// Context locates a fragment within its view document.
type Context struct {
	File          string
	ComponentPath string
	ComponentType string
	Origin        Origin
}

var (
	printStmtScanRe   = regexp.MustCompile(`\bprint\s+[^(\s]`)
	printCallScanRe   = regexp.MustCompile(`\bprint\s*\(`)
	componentLookupRe = regexp.MustCompile(`\b(getSibling|getParent|getChild|getComponent)\s*\(`)
	systemCallScanRe  = regexp.MustCompile(`\bsystem\.\w+(?:\.\w+)*`)
)

// AnalyzeFragment runs every embedded-script check over one fragment.
// Only the indentation precondition and a parse failure are errors; the
// rest of the findings are advisory.
func AnalyzeFragment(fragment string, ctx Context) []issue.Issue {
	if strings.TrimSpace(fragment) == "" {
		return nil
	}

	var issues []issue.Issue
	at := func(sev issue.Severity, code, msg, suggestion string, line int) {
		issues = append(issues, issue.Issue{
			Severity:      sev,
			Code:          code,
			Message:       msg,
			File:          ctx.File,
			Line:          line,
			ComponentPath: ctx.ComponentPath,
			ComponentType: ctx.ComponentType,
			Suggestion:    suggestion,
		})
	}

	issues = append(issues, checkIndentation(fragment, ctx)...)
	issues = append(issues, checkFragmentSyntax(fragment, ctx)...)

	if strings.Contains(fragment, "localhost") || strings.Contains(fragment, "127.0.0.1") {
		at(issue.SeverityWarning, "JYTHON_HARDCODED_LOCALHOST",
			"Hardcoded localhost reference detected",
			"Use a configurable gateway URL", 0)
	}

	if printStmtScanRe.MatchString(fragment) {
		at(issue.SeverityWarning, "JYTHON_PRINT_STATEMENT",
			"Legacy print statement found",
			"Change 'print x' to 'print(x)'", 0)
	}

	if loc := barePrintCall(fragment); loc > 0 {
		at(issue.SeverityInfo, "JYTHON_PREFER_PERSPECTIVE_PRINT",
			"Bare print() writes to the wrapper log only",
			fmt.Sprintf("Use system.perspective.print() in this %s for gateway log visibility", ctx.Origin), loc)
	}

	hasHTTP := strings.Contains(fragment, "httpClient") ||
		strings.Contains(fragment, "httpPost") ||
		strings.Contains(fragment, "httpGet")
	hasTry := strings.Contains(fragment, "try:") && strings.Contains(fragment, "except")
	if hasHTTP && !hasTry {
		at(issue.SeverityWarning, "JYTHON_HTTP_WITHOUT_EXCEPTION_HANDLING",
			"HTTP calls should be wrapped in try/except",
			"Add error handling around network calls", 0)
	}

	if !strings.Contains(fragment, "try:") {
		for _, fn := range []string{"getChild", "getSibling", "sendMessage", "closePopup"} {
			if strings.Contains(fragment, fn) {
				at(issue.SeverityInfo, "JYTHON_RECOMMEND_ERROR_HANDLING",
					fmt.Sprintf("Consider wrapping %s usage in error handling", fn), "", 0)
			}
		}
	}

	seen := map[string]bool{}
	for _, match := range componentLookupRe.FindAllStringSubmatch(fragment, -1) {
		fn := match[1]
		if seen[fn] {
			continue
		}
		seen[fn] = true
		at(issue.SeverityWarning, "JYTHON_BAD_COMPONENT_REF",
			fmt.Sprintf("Component tree traversal %s() is fragile and breaks on refactoring", fn),
			"Use view custom properties or message handlers instead", 0)
	}

	issues = append(issues, checkSystemCalls(fragment, ctx, 0)...)
	issues = append(issues, checkJavaImports(dedent(fragment), ctx)...)
	return issues
}

// barePrintCall finds a print( call not preceded by a dot or identifier
// character, returning its 1-based line or 0.
func barePrintCall(fragment string) int {
	for lineNum, line := range strings.Split(fragment, "\n") {
		for _, loc := range printCallScanRe.FindAllStringIndex(line, -1) {
			if loc[0] > 0 {
				prev := line[loc[0]-1]
				if prev == '.' || prev == '_' ||
					(prev >= 'a' && prev <= 'z') || (prev >= 'A' && prev <= 'Z') || (prev >= '0' && prev <= '9') {
					continue
				}
			}
			return lineNum + 1
		}
	}
	return 0
}

// checkIndentation enforces the fragment line-shape precondition and the
// tab/space consistency conventions.
func checkIndentation(fragment string, ctx Context) []issue.Issue {
	var issues []issue.Issue
	at := func(sev issue.Severity, code, msg, suggestion string, line int) {
		issues = append(issues, issue.Issue{
			Severity:      sev,
			Code:          code,
			Message:       msg,
			File:          ctx.File,
			Line:          line,
			ComponentPath: ctx.ComponentPath,
			ComponentType: ctx.ComponentType,
			Suggestion:    suggestion,
		})
	}

	var nonIndented, mixedLines []int
	var tabLines, spaceLines []int
	var jumps [][3]int

	previousIndent := 0
	for index, line := range strings.Split(fragment, "\n") {
		num := index + 1
		if strings.TrimSpace(line) == "" {
			continue
		}

		tabs := len(line) - len(strings.TrimLeft(line, "\t"))
		afterTabs := strings.TrimLeft(line, "\t")
		spacesAfterTabs := len(afterTabs) - len(strings.TrimLeft(afterTabs, " "))

		if !strings.HasPrefix(line, "\t") && !strings.HasPrefix(line, "    ") {
			nonIndented = append(nonIndented, num)
		}

		if tabs > 0 {
			if spacesAfterTabs > 0 {
				mixedLines = append(mixedLines, num)
			} else {
				tabLines = append(tabLines, num)
			}
		} else if spacesAfterTabs > 0 {
			spaceLines = append(spaceLines, num)
		}

		currentIndent := tabs + spacesAfterTabs/4
		if currentIndent > previousIndent+1 {
			jumps = append(jumps, [3]int{num, currentIndent, previousIndent})
		}
		previousIndent = currentIndent
	}

	if len(nonIndented) > 0 {
		cited := nonIndented
		if len(cited) > 5 {
			cited = cited[:5]
		}
		at(issue.SeverityError, "JYTHON_INDENTATION_REQUIRED",
			fmt.Sprintf("Lines %s have no indentation; embedded scripts require at least one tab or 4 spaces", joinInts(cited)),
			"Indent each line with a tab (recommended) or 4 spaces", nonIndented[0])
	}

	for i, num := range mixedLines {
		if i == 3 {
			break
		}
		at(issue.SeverityWarning, "JYTHON_MIXED_INDENTATION",
			fmt.Sprintf("Mixed tabs and spaces on line %d", num),
			"Use tabs consistently for indentation", num)
	}

	if len(tabLines) > 0 && len(spaceLines) > 0 {
		at(issue.SeverityInfo, "JYTHON_INCONSISTENT_INDENTATION_STYLE",
			"Mixed indentation styles detected (tabs and spaces)",
			"Use tabs consistently to match platform conventions", 0)
	}

	for _, jump := range jumps {
		at(issue.SeverityWarning, "JYTHON_INDENTATION_JUMP",
			fmt.Sprintf("Indentation jumps from %d to %d levels on line %d", jump[2], jump[1], jump[0]),
			"Increase indentation by one level per logical block", jump[0])
	}

	return issues
}

func joinInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, ", ")
}

// checkFragmentSyntax dedents, normalizes legacy syntax, and parses.
func checkFragmentSyntax(fragment string, ctx Context) []issue.Issue {
	normalized := normalizeLegacySyntax(dedent(fragment))
	tree, serr, err := parsePython([]byte(normalized))
	if tree != nil {
		defer tree.Close()
	}
	if err != nil {
		return []issue.Issue{{
			Severity:      issue.SeverityError,
			Code:          "JYTHON_PARSE_ERROR",
			Message:       fmt.Sprintf("Could not parse script: %v", err),
			File:          ctx.File,
			ComponentPath: ctx.ComponentPath,
			ComponentType: ctx.ComponentType,
			Suggestion:    "Check the script for structural problems",
		}}
	}
	if serr != nil {
		return []issue.Issue{{
			Severity:      issue.SeverityError,
			Code:          "JYTHON_SYNTAX_ERROR",
			Message:       fmt.Sprintf("Python syntax error: %s", serr.Message),
			File:          ctx.File,
			Line:          serr.Line,
			Column:        serr.Column,
			ComponentPath: ctx.ComponentPath,
			ComponentType: ctx.ComponentType,
			Suggestion:    fmt.Sprintf("Fix syntax near line %d", serr.Line),
		}}
	}
	return nil
}

// checkSystemCalls flags system.* calls outside the known namespace set.
// lineBase offsets reported lines for callers scanning a sub-range.
func checkSystemCalls(text string, ctx Context, lineBase int) []issue.Issue {
	var issues []issue.Issue
	reported := map[string]bool{}
	for lineNum, line := range strings.Split(text, "\n") {
		for _, call := range systemCallScanRe.FindAllString(line, -1) {
			parts := strings.Split(call, ".")
			if len(parts) < 2 {
				continue
			}
			modulePath := parts[0] + "." + parts[1]
			if systemModules[modulePath] || reported[call] {
				continue
			}
			reported[call] = true
			issues = append(issues, issue.Issue{
				Severity:      issue.SeverityWarning,
				Code:          "IGNITION_UNKNOWN_SYSTEM_CALL",
				Message:       fmt.Sprintf("Unknown system function call: %s", call),
				File:          ctx.File,
				Line:          lineBase + lineNum + 1,
				ComponentPath: ctx.ComponentPath,
				ComponentType: ctx.ComponentType,
				Suggestion:    "Verify the function exists in the platform documentation",
			})
		}
	}
	return issues
}
