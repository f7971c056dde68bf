// Package expression scans Ignition expression-language strings for risky
// patterns. The expression language is small enough that a full grammar parse
// buys nothing here: every check is a targeted pattern scan, which also keeps
// malformed expressions from aborting the run.
package expression

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ignition-tooling/ignition-lint/pkg/issue"
	"github.com/ignition-tooling/ignition-lint/pkg/logger"
)

var log = logger.New("expression:analyzer")

// DefaultPollingMillis is the implicit rate applied when now() is called
// without arguments.
const DefaultPollingMillis = 1000

// MinPollingMillis is the floor below which explicit polling rates are
// flagged as a client-performance concern.
const MinPollingMillis = 5000

// knownFunctions is the curated catalog of Ignition 8.x expression functions,
// collected from the documented math, string, date, logic, cast, aggregate,
// color, JSON, tag, and Perspective categories.
var knownFunctions = map[string]bool{
	// Math
	"abs": true, "ceil": true, "floor": true, "max": true, "min": true,
	"round": true, "sqrt": true, "pow": true, "log": true, "mod": true,
	"rand": true, "signum": true,
	// String
	"concat": true, "endsWith": true, "indexOf": true, "left": true,
	"len": true, "lower": true, "ltrim": true, "mid": true,
	"numberFormat": true, "regexExtract": true, "repeat": true,
	"replace": true, "reverse": true, "right": true, "rtrim": true,
	"split": true, "startsWith": true, "substring": true, "toStr": true,
	"trim": true, "upper": true, "urlEncode": true, "urlDecode": true,
	"unicodeNormalize": true,
	// Date/Time
	"dateArith": true, "dateDiff": true, "dateExtract": true,
	"dateFormat": true, "dateParse": true, "daysBetween": true,
	"hoursBetween": true, "millisBetween": true, "minutesBetween": true,
	"monthsBetween": true, "now": true, "secondsBetween": true,
	"setTime": true, "toDate": true, "weeksBetween": true,
	"yearsBetween": true,
	// Logic / comparison
	"if": true, "switch": true, "coalesce": true, "choose": true,
	"isNull": true, "hasChanged": true, "previousValue": true,
	"qualify": true,
	// Type casting
	"toBool": true, "toColor": true, "toDataSet": true, "toDouble": true,
	"toFloat": true, "toInt": true, "toLong": true,
	// Aggregate / dataset
	"avg": true, "columnCount": true, "forEach": true, "getColumn": true,
	"hasRows": true, "lookup": true, "rowCount": true, "sum": true,
	"dataSetToJSON": true, "jsonToDataSet": true,
	// Color
	"chooseColor": true, "colorMix": true,
	// JSON
	"jsonDecode": true, "jsonEncode": true, "jsonMerge": true,
	"jsonDelete": true, "jsonKeys": true, "jsonSet": true,
	"jsonLength": true, "jsonValueByKey": true,
	// Tag quality
	"hasQuality": true, "isGood": true, "isBad": true,
	"isUncertain": true, "isNotGood": true, "tag": true, "tagCount": true,
	// Advanced / Perspective
	"binEncode": true, "binDecode": true, "forceQuality": true,
	"getMillis": true, "htmlToPlain": true, "isAuthorized": true,
	"mapLat": true, "mapLng": true, "runScript": true, "typeOf": true,
}

var (
	// Function call: word followed by '(' not preceded by a dot, so
	// method-style calls are not mistaken for expression functions.
	functionCallRe = regexp.MustCompile(`([a-zA-Z_][a-zA-Z0-9_]*)\s*\(`)

	// Property interpolation like {this.props.value} or {view.custom.x}.
	propertyRefRe = regexp.MustCompile(`\{([^}]*)\}`)

	nowNoArgsRe = regexp.MustCompile(`\bnow\s*\(\s*\)`)
	nowRateRe   = regexp.MustCompile(`\bnow\s*\(\s*(\d+)\s*\)`)
)

// componentLookupFuncs are component-tree traversal calls that silently break
// when components are renamed or moved.
var componentLookupFuncs = []string{"getSibling", "getParent", "getChild", "getComponent"}

// Location pins an expression to the document position it was found at, so
// findings carry a useful structural path.
type Location struct {
	File          string
	ComponentPath string
	ComponentType string
}

// Analyze scans one expression string and returns any findings, located at
// loc. Empty and blank expressions yield nothing.
func Analyze(text string, loc Location) []issue.Issue {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	log.Printf("Analyzing expression at %s (%d bytes)", loc.ComponentPath, len(text))

	var issues []issue.Issue
	issues = append(issues, checkNowPolling(text, loc)...)
	issues = append(issues, checkPropertyRefs(text, loc)...)
	issues = append(issues, checkFunctionNames(text, loc)...)
	issues = append(issues, checkComponentLookups(text, loc)...)
	return issues
}

func checkNowPolling(text string, loc Location) []issue.Issue {
	var issues []issue.Issue

	for range nowNoArgsRe.FindAllString(text, -1) {
		issues = append(issues, located(loc, issue.Issue{
			Severity:   issue.SeverityWarning,
			Code:       "EXPR_NOW_DEFAULT_POLLING",
			Message:    fmt.Sprintf("now() without arguments defaults to %dms polling; specify an explicit rate", DefaultPollingMillis),
			Suggestion: "Use now(5000) or now(0) for event-driven updates",
		}))
	}

	for _, m := range nowRateRe.FindAllStringSubmatch(text, -1) {
		rate, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if rate > 0 && rate < MinPollingMillis {
			issues = append(issues, located(loc, issue.Issue{
				Severity:   issue.SeverityInfo,
				Code:       "EXPR_NOW_LOW_POLLING",
				Message:    fmt.Sprintf("now(%d) polls at %dms - consider a higher interval for performance", rate, rate),
				Suggestion: fmt.Sprintf("Rates below %dms can impact client performance", MinPollingMillis),
			}))
		}
	}

	return issues
}

func checkPropertyRefs(text string, loc Location) []issue.Issue {
	var issues []issue.Issue

	for _, m := range propertyRefRe.FindAllStringSubmatch(text, -1) {
		ref := strings.TrimSpace(m[1])
		// Tag paths ([Provider]Path), absolute component paths (/root/...),
		// and relative component paths (../...) may legitimately contain
		// spaces; only dotted property paths are held to the no-space rule.
		if strings.HasPrefix(ref, "[") || strings.HasPrefix(ref, "/") || strings.HasPrefix(ref, "..") {
			continue
		}
		if strings.Contains(ref, " ") {
			issues = append(issues, located(loc, issue.Issue{
				Severity:   issue.SeverityError,
				Code:       "EXPR_INVALID_PROPERTY_REF",
				Message:    fmt.Sprintf("Property reference '{%s}' contains spaces", ref),
				Suggestion: "Remove spaces from property reference path",
			}))
		}
	}

	return issues
}

func checkFunctionNames(text string, loc Location) []issue.Issue {
	var issues []issue.Issue

	for _, m := range functionCallRe.FindAllStringSubmatchIndex(text, -1) {
		start := m[2]
		name := text[m[2]:m[3]]
		// Skip method calls: a preceding '.' or word character means this is
		// not a top-level expression function.
		if start > 0 {
			prev := text[start-1]
			if prev == '.' || prev == '_' ||
				(prev >= 'a' && prev <= 'z') || (prev >= 'A' && prev <= 'Z') || (prev >= '0' && prev <= '9') {
				continue
			}
		}
		if !knownFunctions[name] {
			issues = append(issues, located(loc, issue.Issue{
				Severity:   issue.SeverityInfo,
				Code:       "EXPR_UNKNOWN_FUNCTION",
				Message:    fmt.Sprintf("Unrecognized expression function '%s'", name),
				Suggestion: "Check Ignition docs for valid expression functions",
			}))
		}
	}

	return issues
}

func checkComponentLookups(text string, loc Location) []issue.Issue {
	var issues []issue.Issue

	for _, fn := range componentLookupFuncs {
		re := regexp.MustCompile(`\b` + fn + `\s*\(`)
		if re.MatchString(text) {
			issues = append(issues, located(loc, issue.Issue{
				Severity:   issue.SeverityWarning,
				Code:       "EXPR_BAD_COMPONENT_REF",
				Message:    fmt.Sprintf("Component tree traversal '%s()' in expression is fragile", fn),
				Suggestion: "Use view custom properties or message handlers instead",
			}))
		}
	}

	return issues
}

func located(loc Location, iss issue.Issue) issue.Issue {
	iss.File = loc.File
	iss.ComponentPath = loc.ComponentPath
	iss.ComponentType = loc.ComponentType
	return iss
}
