package script

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignition-tooling/ignition-lint/pkg/issue"
)

func countCode(issues []issue.Issue, code string) int {
	n := 0
	for _, iss := range issues {
		if iss.Code == code {
			n++
		}
	}
	return n
}

func findCode(issues []issue.Issue, code string) *issue.Issue {
	for i := range issues {
		if issues[i].Code == code {
			return &issues[i]
		}
	}
	return nil
}

func codesOf(issues []issue.Issue) []string {
	codes := make([]string, 0, len(issues))
	for _, iss := range issues {
		codes = append(codes, iss.Code)
	}
	return codes
}

func TestNormalizeLegacySyntax(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "print statement",
			input: "print 'hello'",
			want:  "print('hello')",
		},
		{
			name:  "print redirect with args",
			input: "print >>sys.stderr, 'oops'",
			want:  "print('oops', file=sys.stderr)",
		},
		{
			name:  "print redirect without args",
			input: "print >>sys.stderr",
			want:  "print(file=sys.stderr)",
		},
		{
			name:  "except comma",
			input: "except ValueError, e:",
			want:  "except ValueError as e:",
		},
		{
			name:  "raise comma",
			input: "raise ValueError, 'bad input'",
			want:  "raise ValueError('bad input')",
		},
		{
			name:  "print call left alone",
			input: "print('hello')",
			want:  "print('hello')",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeLegacySyntax(tt.input))
		})
	}
}

func TestDedent(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "one tab removed",
			input: "\tx = 1\n\tif x:\n\t\ty = 2",
			want:  "x = 1\nif x:\n\ty = 2",
		},
		{
			name:  "blank lines ignored",
			input: "\tx = 1\n\n\ty = 2",
			want:  "x = 1\n\ny = 2",
		},
		{
			name:  "no common prefix",
			input: "x = 1\n\ty = 2",
			want:  "x = 1\n\ty = 2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dedent(tt.input))
		})
	}
}

func TestFragmentIndentationRequired(t *testing.T) {
	issues := AnalyzeFragment("\tx = 1\ny = 2", Context{File: "view.json"})

	require.Equal(t, 1, countCode(issues, "JYTHON_INDENTATION_REQUIRED"), "codes: %v", codesOf(issues))
	iss := findCode(issues, "JYTHON_INDENTATION_REQUIRED")
	assert.Equal(t, issue.SeverityError, iss.Severity)
	assert.Contains(t, iss.Message, "2")
	assert.Equal(t, 2, iss.Line)
}

func TestFragmentCleanScript(t *testing.T) {
	fragment := "\tvalue = value * 2\n\treturn value"
	issues := AnalyzeFragment(fragment, Context{File: "view.json", Origin: OriginTransform})
	for _, iss := range issues {
		assert.Less(t, iss.Severity, issue.SeverityError, "unexpected %s: %s", iss.Code, iss.Message)
	}
	assert.Zero(t, countCode(issues, "JYTHON_SYNTAX_ERROR"))
	assert.Zero(t, countCode(issues, "JYTHON_INDENTATION_REQUIRED"))
}

func TestFragmentEmptyIsIgnored(t *testing.T) {
	assert.Empty(t, AnalyzeFragment("", Context{}))
	assert.Empty(t, AnalyzeFragment("   \n\t\n", Context{}))
}

func TestFragmentLegacyPrintParses(t *testing.T) {
	issues := AnalyzeFragment("\tprint 'starting'\n\treturn value", Context{File: "view.json"})
	assert.Zero(t, countCode(issues, "JYTHON_SYNTAX_ERROR"), "codes: %v", codesOf(issues))
	assert.Equal(t, 1, countCode(issues, "JYTHON_PRINT_STATEMENT"))
}

func TestFragmentSyntaxError(t *testing.T) {
	issues := AnalyzeFragment("\tdef broken(:\n\t\tpass", Context{File: "view.json"})
	require.Equal(t, 1, countCode(issues, "JYTHON_SYNTAX_ERROR"), "codes: %v", codesOf(issues))
	iss := findCode(issues, "JYTHON_SYNTAX_ERROR")
	assert.Equal(t, issue.SeverityError, iss.Severity)
	assert.NotZero(t, iss.Line)
}

func TestFragmentIndentationConventions(t *testing.T) {
	t.Run("mixed tabs and spaces on one line", func(t *testing.T) {
		issues := AnalyzeFragment("\tx = 1\n\t  y = 2", Context{})
		assert.Equal(t, 1, countCode(issues, "JYTHON_MIXED_INDENTATION"))
	})

	t.Run("tab and space styles across fragment", func(t *testing.T) {
		issues := AnalyzeFragment("\tx = 1\n    y = 2", Context{})
		assert.Equal(t, 1, countCode(issues, "JYTHON_INCONSISTENT_INDENTATION_STYLE"))
	})

	t.Run("indentation jump is a warning", func(t *testing.T) {
		issues := AnalyzeFragment("\tx = 1\n\t\t\t\ty = 2", Context{})
		iss := findCode(issues, "JYTHON_INDENTATION_JUMP")
		require.NotNil(t, iss, "codes: %v", codesOf(issues))
		assert.Equal(t, issue.SeverityWarning, iss.Severity)
	})
}

func TestFragmentPerspectivePrint(t *testing.T) {
	issues := AnalyzeFragment("\tprint(value)\n\treturn value", Context{Origin: OriginTransform})
	iss := findCode(issues, "JYTHON_PREFER_PERSPECTIVE_PRINT")
	require.NotNil(t, iss)
	assert.Contains(t, iss.Suggestion, "transform")

	issues = AnalyzeFragment("\tprint(event)", Context{Origin: OriginEventHandler})
	iss = findCode(issues, "JYTHON_PREFER_PERSPECTIVE_PRINT")
	require.NotNil(t, iss)
	assert.Contains(t, iss.Suggestion, "event handler")

	issues = AnalyzeFragment("\tsystem.perspective.print(value)\n\treturn value", Context{})
	assert.Zero(t, countCode(issues, "JYTHON_PREFER_PERSPECTIVE_PRINT"), "codes: %v", codesOf(issues))
}

func TestFragmentHTTPWithoutExceptionHandling(t *testing.T) {
	fragment := "\tresult = system.net.httpGet(url)\n\treturn result"
	issues := AnalyzeFragment(fragment, Context{})
	assert.Equal(t, 1, countCode(issues, "JYTHON_HTTP_WITHOUT_EXCEPTION_HANDLING"))

	wrapped := "\ttry:\n\t\tresult = system.net.httpGet(url)\n\texcept:\n\t\tresult = None\n\treturn result"
	issues = AnalyzeFragment(wrapped, Context{})
	assert.Zero(t, countCode(issues, "JYTHON_HTTP_WITHOUT_EXCEPTION_HANDLING"))
}

func TestFragmentComponentTraversal(t *testing.T) {
	fragment := "\tlabel = self.getSibling('StatusLabel')\n\tlabel.props.text = 'Done'"
	issues := AnalyzeFragment(fragment, Context{})
	assert.Equal(t, 1, countCode(issues, "JYTHON_BAD_COMPONENT_REF"))
	assert.Equal(t, 1, countCode(issues, "JYTHON_RECOMMEND_ERROR_HANDLING"))
}

func TestFragmentHardcodedLocalhost(t *testing.T) {
	issues := AnalyzeFragment("\turl = 'http://localhost:8088/main'", Context{})
	assert.Equal(t, 1, countCode(issues, "JYTHON_HARDCODED_LOCALHOST"))
}

func TestFragmentUnknownSystemCall(t *testing.T) {
	issues := AnalyzeFragment("\tsystem.frobnicate.run()", Context{})
	iss := findCode(issues, "IGNITION_UNKNOWN_SYSTEM_CALL")
	require.NotNil(t, iss, "codes: %v", codesOf(issues))
	assert.Contains(t, iss.Message, "system.frobnicate.run")

	issues = AnalyzeFragment("\tsystem.tag.readBlocking(paths)", Context{})
	assert.Zero(t, countCode(issues, "IGNITION_UNKNOWN_SYSTEM_CALL"))
}

func TestFragmentOnlyIndentationAndParseAreErrors(t *testing.T) {
	fragment := strings.Join([]string{
		"\tprint 'debug'",
		"\tresult = system.net.httpGet('http://localhost:8088')",
		"\tlabel = self.getSibling('A')",
		"\treturn result",
	}, "\n")
	issues := AnalyzeFragment(fragment, Context{})
	assert.NotEmpty(t, issues)
	for _, iss := range issues {
		assert.Less(t, iss.Severity, issue.SeverityError, "unexpected error %s", iss.Code)
	}
}

func TestJavaImportChecks(t *testing.T) {
	t.Run("wildcard import of known package", func(t *testing.T) {
		issues := checkJavaImports("from java.util import *\nx = ArrayList()", Context{})
		assert.Equal(t, 1, countCode(issues, "JYTHON_IMPORT_STAR"))
	})

	t.Run("unknown java package", func(t *testing.T) {
		issues := checkJavaImports("from java.utlz import HashMap\nm = HashMap()", Context{})
		assert.Equal(t, 1, countCode(issues, "JYTHON_UNKNOWN_JAVA_PACKAGE"))
	})

	t.Run("unused import", func(t *testing.T) {
		issues := checkJavaImports("from java.util import ArrayList, HashMap\nx = ArrayList()", Context{})
		require.Equal(t, 1, countCode(issues, "JYTHON_UNUSED_JAVA_IMPORT"))
		assert.Contains(t, findCode(issues, "JYTHON_UNUSED_JAVA_IMPORT").Message, "HashMap")
	})

	t.Run("aliased import tracked by alias", func(t *testing.T) {
		issues := checkJavaImports("from java.lang import Exception as JException\nraise JException('x')", Context{})
		assert.Zero(t, countCode(issues, "JYTHON_UNUSED_JAVA_IMPORT"))
	})

	t.Run("python imports ignored", func(t *testing.T) {
		issues := checkJavaImports("from collections import OrderedDict", Context{})
		assert.Empty(t, issues)
	})
}

func TestAnalyzeFileSyntaxError(t *testing.T) {
	issues := AnalyzeFile("bad.py", "def broken(:\n\tpass\n")
	require.Equal(t, 1, countCode(issues, "JYTHON_SYNTAX_ERROR"), "codes: %v", codesOf(issues))
	assert.Equal(t, issue.SeverityError, findCode(issues, "JYTHON_SYNTAX_ERROR").Severity)
}

func TestAnalyzeFileDocstrings(t *testing.T) {
	source := strings.Join([]string{
		`def documented():`,
		`	"""Does the thing."""`,
		`	return 1`,
		``,
		`def undocumented():`,
		`	return 2`,
		``,
		`def _private():`,
		`	return 3`,
		``,
	}, "\n")

	issues := AnalyzeFile("lib.py", source)
	require.Equal(t, 1, countCode(issues, "MISSING_DOCSTRING"), "codes: %v", codesOf(issues))
	iss := findCode(issues, "MISSING_DOCSTRING")
	assert.Equal(t, issue.SeverityStyle, iss.Severity)
	assert.Contains(t, iss.Message, "undocumented")
	assert.Equal(t, 5, iss.Line)
}

func TestAnalyzeFileLineChecks(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantCode string
		wantSev  issue.Severity
	}{
		{name: "long line", line: "x = '" + strings.Repeat("a", 140) + "'", wantCode: "LONG_LINE", wantSev: issue.SeverityStyle},
		{name: "xrange", line: "for i in xrange(10): pass", wantCode: "JYTHON_XRANGE_USAGE", wantSev: issue.SeverityInfo},
		{name: "iteritems", line: "for k, v in d.iteritems(): pass", wantCode: "JYTHON_DEPRECATED_ITERITEMS", wantSev: issue.SeverityWarning},
		{name: "has_key", line: "found = d.has_key('x')", wantCode: "JYTHON_HAS_KEY_USAGE", wantSev: issue.SeverityWarning},
		{name: "basestring", line: "ok = isinstance(x, basestring)", wantCode: "JYTHON_STRING_TYPES", wantSev: issue.SeverityWarning},
		{name: "system override", line: "system = get_helper()", wantCode: "IGNITION_SYSTEM_OVERRIDE", wantSev: issue.SeverityError},
		{name: "hardcoded gateway", line: "url = 'http://localhost:8088/system'", wantCode: "IGNITION_HARDCODED_GATEWAY", wantSev: issue.SeverityWarning},
		{name: "debug print", line: "print('debug: %s' % value)", wantCode: "IGNITION_DEBUG_PRINT", wantSev: issue.SeverityInfo},
		{name: "global", line: "global counter", wantCode: "GLOBAL_VARIABLE_USAGE", wantSev: issue.SeverityWarning},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := AnalyzeFile("lib.py", tt.line+"\n")
			iss := findCode(issues, tt.wantCode)
			require.NotNil(t, iss, "codes: %v", codesOf(issues))
			assert.Equal(t, tt.wantSev, iss.Severity)
			assert.Equal(t, 1, iss.Line)
		})
	}
}

func TestAnalyzeFileJavaIntegration(t *testing.T) {
	source := strings.Join([]string{
		"from java.util import ArrayList",
		"from javax.swing import JFrame",
		"",
		"def build():",
		`	"""Builds the widgets."""`,
		"	return ArrayList(), JFrame()",
		"",
	}, "\n")

	issues := AnalyzeFile("gui.py", source)
	iss := findCode(issues, "JAVA_INTEGRATION_DETECTED")
	require.NotNil(t, iss, "codes: %v", codesOf(issues))
	assert.Equal(t, issue.SeverityInfo, iss.Severity)
	assert.Contains(t, iss.Message, "2 imports")
}

func TestAnalyzeFileUnknownSystemCall(t *testing.T) {
	source := "def run():\n\t\"\"\"Runs.\"\"\"\n\treturn system.widget.spin()\n"
	issues := AnalyzeFile("lib.py", source)
	assert.Equal(t, 1, countCode(issues, "IGNITION_UNKNOWN_SYSTEM_CALL"))
}
