package suppress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignition-tooling/ignition-lint/pkg/issue"
)

func TestGlobalIgnoreSet(t *testing.T) {
	cfg := NewConfig([]string{"LONG_LINE", "MISSING_DOCSTRING"}, nil, nil)

	assert.True(t, cfg.ShouldSuppress(issue.Issue{Code: "LONG_LINE", File: "a.py"}))
	assert.True(t, cfg.ShouldSuppress(issue.Issue{Code: "MISSING_DOCSTRING", File: "b.py"}))
	assert.False(t, cfg.ShouldSuppress(issue.Issue{Code: "JYTHON_SYNTAX_ERROR", File: "a.py"}))
}

func TestIgnoreFilePatterns(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		iss   issue.Issue
		want  bool
	}{
		{
			name:  "unqualified entry suppresses every code",
			entry: Entry{Pattern: "legacy/**"},
			iss:   issue.Issue{Code: "ANY_CODE", File: "legacy/screens/view.json"},
			want:  true,
		},
		{
			name:  "qualified entry suppresses only listed codes",
			entry: Entry{Pattern: "vendor/**", Codes: map[string]bool{"LONG_LINE": true}},
			iss:   issue.Issue{Code: "MISSING_DOCSTRING", File: "vendor/lib.py"},
			want:  false,
		},
		{
			name:  "qualified entry matches listed code",
			entry: Entry{Pattern: "vendor/**", Codes: map[string]bool{"LONG_LINE": true}},
			iss:   issue.Issue{Code: "LONG_LINE", File: "vendor/lib.py"},
			want:  true,
		},
		{
			name:  "basename pattern matches at any depth",
			entry: Entry{Pattern: "*.generated.py"},
			iss:   issue.Issue{Code: "LONG_LINE", File: "scripts/deep/util.generated.py"},
			want:  true,
		},
		{
			name:  "directory pattern suppresses everything beneath it",
			entry: Entry{Pattern: "ignored"},
			iss:   issue.Issue{Code: "LONG_LINE", File: "project/ignored/script.py"},
			want:  true,
		},
		{
			name:  "non-matching path keeps the issue",
			entry: Entry{Pattern: "legacy/**"},
			iss:   issue.Issue{Code: "LONG_LINE", File: "current/view.json"},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(nil, []Entry{tt.entry}, nil)
			assert.Equal(t, tt.want, cfg.ShouldSuppress(tt.iss))
		})
	}
}

func TestIgnoreFileEntriesStack(t *testing.T) {
	// When several entries match one file, their code sets union together.
	entries := []Entry{
		{Pattern: "scripts/**", Codes: map[string]bool{"LONG_LINE": true}},
		{Pattern: "scripts/util.py", Codes: map[string]bool{"MISSING_DOCSTRING": true}},
	}
	cfg := NewConfig(nil, entries, nil)

	assert.True(t, cfg.ShouldSuppress(issue.Issue{Code: "LONG_LINE", File: "scripts/util.py"}))
	assert.True(t, cfg.ShouldSuppress(issue.Issue{Code: "MISSING_DOCSTRING", File: "scripts/util.py"}))
	assert.False(t, cfg.ShouldSuppress(issue.Issue{Code: "GLOBAL_VARIABLE_USAGE", File: "scripts/util.py"}))
}

func TestInlineDirectiveScopes(t *testing.T) {
	text := "# ignition-lint: disable-file=MISSING_DOCSTRING\n" +
		"def process(data):\n" +
		"# ignition-lint: disable-next=LONG_LINE\n" +
		"\tresult = transform(data)\n" +
		"\tvalue = compute(result)  # ignition-lint: disable-line=GLOBAL_VARIABLE_USAGE\n"

	d := ExtractDirectives(text)
	require.NotNil(t, d)
	cfg := NewConfig(nil, nil, map[string]*Directives{"scripts/proc.py": d})

	// File-wide scope.
	assert.True(t, cfg.ShouldSuppress(issue.Issue{Code: "MISSING_DOCSTRING", File: "scripts/proc.py", Line: 2}))
	assert.True(t, cfg.ShouldSuppress(issue.Issue{Code: "MISSING_DOCSTRING", File: "scripts/proc.py"}))
	// Other files are untouched.
	assert.False(t, cfg.ShouldSuppress(issue.Issue{Code: "MISSING_DOCSTRING", File: "scripts/other.py"}))

	// Next-line scope hits line 4 only.
	assert.True(t, cfg.ShouldSuppress(issue.Issue{Code: "LONG_LINE", File: "scripts/proc.py", Line: 4}))
	assert.False(t, cfg.ShouldSuppress(issue.Issue{Code: "LONG_LINE", File: "scripts/proc.py", Line: 3}))

	// Same-line scope.
	assert.True(t, cfg.ShouldSuppress(issue.Issue{Code: "GLOBAL_VARIABLE_USAGE", File: "scripts/proc.py", Line: 5}))
	assert.False(t, cfg.ShouldSuppress(issue.Issue{Code: "GLOBAL_VARIABLE_USAGE", File: "scripts/proc.py", Line: 4}))
}

func TestDisableFileOnlyHonoredNearTop(t *testing.T) {
	var lines []string
	for i := 0; i < 12; i++ {
		lines = append(lines, "\tpass")
	}
	deep := joinLines(append(lines, "# ignition-lint: disable-file=LONG_LINE"))
	assert.Nil(t, ExtractDirectives(deep))

	early := joinLines([]string{"# comment", "# ignition-lint: disable-file=LONG_LINE", "\tpass"})
	d := ExtractDirectives(early)
	require.NotNil(t, d)
	assert.True(t, d.fileWide["LONG_LINE"])
}

func TestDirectiveWithoutCodesHasNoEffect(t *testing.T) {
	assert.Nil(t, ExtractDirectives("# ignition-lint: disable-file=\n\tpass"))
	assert.Nil(t, ExtractDirectives("# ignition-lint: disable-next=\n\tpass"))
}

func TestFileReadErrorNeverSuppressedInline(t *testing.T) {
	d := ExtractDirectives("# ignition-lint: disable-file=FILE_READ_ERROR\n")
	require.NotNil(t, d)
	cfg := NewConfig(nil, nil, map[string]*Directives{"broken.py": d})
	assert.False(t, cfg.ShouldSuppress(issue.Issue{Code: CodeFileReadError, File: "broken.py"}))

	// The same code is still suppressible through the global set.
	global := NewConfig([]string{CodeFileReadError}, nil, nil)
	assert.True(t, global.ShouldSuppress(issue.Issue{Code: CodeFileReadError, File: "broken.py"}))
}

func TestApplyCountsAndIdempotence(t *testing.T) {
	cfg := NewConfig([]string{"LONG_LINE"}, nil, nil)
	issues := []issue.Issue{
		{Code: "LONG_LINE", File: "a.py"},
		{Code: "MISSING_DOCSTRING", File: "a.py"},
		{Code: "LONG_LINE", File: "b.py"},
	}

	kept, suppressed := cfg.Apply(issues)
	assert.Equal(t, 2, suppressed)
	require.Len(t, kept, 1)
	assert.Equal(t, "MISSING_DOCSTRING", kept[0].Code)

	// Re-applying to an already-filtered list suppresses nothing further.
	again, n := cfg.Apply(kept)
	assert.Zero(t, n)
	assert.Equal(t, kept, again)
}

func TestParseIgnoreFile(t *testing.T) {
	content := "# project suppressions\n" +
		"\n" +
		"legacy/**\n" +
		"vendor/**:LONG_LINE,MISSING_DOCSTRING\n" +
		"*.generated.py:LONG_LINE\n"

	entries := ParseIgnoreFile(content)
	require.Len(t, entries, 3)

	assert.Equal(t, "legacy/**", entries[0].Pattern)
	assert.Empty(t, entries[0].Codes)

	assert.Equal(t, "vendor/**", entries[1].Pattern)
	assert.True(t, entries[1].Codes["LONG_LINE"])
	assert.True(t, entries[1].Codes["MISSING_DOCSTRING"])

	assert.Equal(t, "*.generated.py", entries[2].Pattern)
	assert.True(t, entries[2].Codes["LONG_LINE"])
}

func TestParseGlobalCodes(t *testing.T) {
	assert.Nil(t, ParseGlobalCodes(""))
	assert.Nil(t, ParseGlobalCodes("  "))
	assert.Equal(t, []string{"A", "B"}, ParseGlobalCodes("A, B,"))
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}
