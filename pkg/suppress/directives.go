package suppress

import (
	"regexp"
	"strings"
)

// DirectivePrefix introduces an inline suppression comment in script files.
const DirectivePrefix = "# ignition-lint:"

// fileDirectiveMaxLine is the last physical line on which a disable-file
// directive is honored. Directives buried deeper in a file are ignored so a
// whole-file suppression is always visible near the top.
const fileDirectiveMaxLine = 10

// Directives holds the resolved inline suppressions of one script file.
type Directives struct {
	fileWide map[string]bool
	byLine   map[int]map[string]bool
}

var directiveRe = regexp.MustCompile(`#\s*ignition-lint:\s*(disable-file|disable-next|disable-line|disable)\s*=\s*([A-Za-z0-9_,\s]*)`)

// ExtractDirectives scans script text for inline suppression directives.
// The scan is purely textual and independent of the syntax-tree walk, so a
// parse failure can never suppress its own report. Returns nil when the file
// carries no effective directive.
func ExtractDirectives(text string) *Directives {
	d := &Directives{
		fileWide: map[string]bool{},
		byLine:   map[int]map[string]bool{},
	}
	found := false

	for i, line := range strings.Split(text, "\n") {
		lineNum := i + 1
		m := directiveRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		codes := splitCodes(m[2])
		if len(codes) == 0 {
			// A directive naming no codes has no effect.
			continue
		}

		switch m[1] {
		case "disable-file":
			if lineNum > fileDirectiveMaxLine {
				continue
			}
			for _, code := range codes {
				d.fileWide[code] = true
			}
			found = true
		case "disable-next":
			addLineCodes(d.byLine, lineNum+1, codes)
			found = true
		case "disable-line", "disable":
			addLineCodes(d.byLine, lineNum, codes)
			found = true
		}
	}

	if !found {
		return nil
	}
	return d
}

func addLineCodes(byLine map[int]map[string]bool, line int, codes []string) {
	if byLine[line] == nil {
		byLine[line] = map[string]bool{}
	}
	for _, code := range codes {
		byLine[line][code] = true
	}
}

func splitCodes(list string) []string {
	var codes []string
	for _, part := range strings.Split(list, ",") {
		if part = strings.TrimSpace(part); part != "" {
			codes = append(codes, part)
		}
	}
	return codes
}
