// Java import hygiene for the embedded Jython runtime: wildcard imports,
// packages that look Java-shaped but are not recognized, and imported
// classes the script never touches.
package script

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ignition-tooling/ignition-lint/pkg/issue"
)

var (
	fromImportRe = regexp.MustCompile(`^from\s+([\w.]+)\s+import\s+(.*)`)
	importStarRe = regexp.MustCompile(`^from\s+([\w.]+)\s+import\s+\*`)
)

type javaImport struct {
	name string
	line int
}

func checkJavaImports(source string, ctx Context) []issue.Issue {
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

	var imported []javaImport
	lines := strings.Split(source, "\n")
	for index, line := range lines {
		num := index + 1
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "#") {
			continue
		}

		if star := importStarRe.FindStringSubmatch(stripped); star != nil {
			pkg := star[1]
			switch {
			case isKnownJavaPackage(pkg):
				at(issue.SeverityWarning, "JYTHON_IMPORT_STAR",
					fmt.Sprintf("Wildcard import 'from %s import *'; import specific classes instead", pkg),
					fmt.Sprintf("Replace with explicit imports, e.g. 'from %s import ClassName'", pkg), num)
			case looksLikeJavaPackage(pkg):
				at(issue.SeverityInfo, "JYTHON_UNKNOWN_JAVA_PACKAGE",
					fmt.Sprintf("Unknown Java package %q; may be valid but is not recognized", pkg),
					"Verify the package name is correct", num)
			}
			continue
		}

		if from := fromImportRe.FindStringSubmatch(stripped); from != nil {
			pkg := from[1]
			switch {
			case isKnownJavaPackage(pkg):
				for _, part := range strings.Split(from[2], ",") {
					part = strings.TrimSpace(part)
					if part == "" {
						continue
					}
					if _, alias, found := strings.Cut(part, " as "); found {
						imported = append(imported, javaImport{name: strings.TrimSpace(alias), line: num})
					} else {
						imported = append(imported, javaImport{name: part, line: num})
					}
				}
			case looksLikeJavaPackage(pkg):
				at(issue.SeverityInfo, "JYTHON_UNKNOWN_JAVA_PACKAGE",
					fmt.Sprintf("Unknown Java package %q; may be valid but is not recognized", pkg),
					"Verify the package name is correct", num)
			}
		}
	}

	if len(imported) == 0 {
		return issues
	}

	// Everything that is not an import line counts as the body.
	var bodyLines []string
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "from ") || strings.HasPrefix(stripped, "import ") {
			continue
		}
		bodyLines = append(bodyLines, line)
	}
	body := strings.Join(bodyLines, "\n")

	for _, imp := range imported {
		used, err := regexp.MatchString(`\b`+regexp.QuoteMeta(imp.name)+`\b`, body)
		if err != nil || used {
			continue
		}
		at(issue.SeverityInfo, "JYTHON_UNUSED_JAVA_IMPORT",
			fmt.Sprintf("Imported Java class %q is not used in the script", imp.name),
			fmt.Sprintf("Remove unused import %q", imp.name), imp.line)
	}
	return issues
}
