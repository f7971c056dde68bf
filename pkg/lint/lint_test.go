package lint

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignition-tooling/ignition-lint/pkg/issue"
	"github.com/ignition-tooling/ignition-lint/pkg/schema"
	"github.com/ignition-tooling/ignition-lint/pkg/suppress"
)

const goodView = `{
	"root": {
		"type": "ia.container.flex",
		"meta": {"name": "root"},
		"props": {"direction": "column"},
		"children": [
			{
				"type": "ia.display.label",
				"meta": {"name": "StatusLabel"},
				"props": {"text": "Running"}
			},
			{
				"type": "ia.input.button",
				"meta": {"name": "StartButton"},
				"props": {"text": "Start"}
			}
		]
	}
}`

const badIconView = `{
	"root": {
		"type": "ia.container.flex",
		"meta": {"name": "root"},
		"props": {"direction": "row"},
		"children": [
			{
				"type": "ia.display.icon",
				"meta": {"name": "AlarmBadge"},
				"props": {"color": "#FF0000"}
			},
			{
				"type": "ia.display.label",
				"meta": {"name": "AlarmCaption"},
				"props": {"text": "Alarms"}
			}
		]
	}
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newRunner(t *testing.T, opts Options) *Runner {
	t.Helper()
	r, err := NewRunner(opts)
	require.NoError(t, err)
	return r
}

func countCode(report *issue.Report, code string) int {
	n := 0
	for _, iss := range report.Issues {
		if iss.Code == code {
			n++
		}
	}
	return n
}

func TestRunCleanView(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "view.json", goodView)

	r := newRunner(t, Options{Mode: schema.ModeStrict, SeverityFloor: issue.SeverityWarning})
	report := r.Run([]string{path})

	assert.True(t, report.Passed(r.SeverityFloor()), "issues: %+v", report.Issues)
	assert.Zero(t, report.Count(issue.SeverityError))
}

func TestRunMissingRequiredProperty(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "view.json", badIconView)

	r := newRunner(t, Options{Mode: schema.ModeStrict, SeverityFloor: issue.SeverityError})
	report := r.Run([]string{path})

	assert.Equal(t, 1, countCode(report, "MISSING_REQUIRED_PROPERTY"))
	assert.False(t, report.Passed(r.SeverityFloor()))
}

func TestRunUnreadableFileContinues(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "view.json", goodView)
	missing := filepath.Join(dir, "absent.json")

	r := newRunner(t, Options{Mode: schema.ModeStrict})
	report := r.Run([]string{missing, good})

	require.Equal(t, 1, countCode(report, "FILE_READ_ERROR"))
	assert.Equal(t, missing, report.Issues[0].File)
}

func TestRunInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "view.json", `{"root": {`)

	r := newRunner(t, Options{Mode: schema.ModeStrict})
	report := r.Run([]string{path})

	require.Equal(t, 1, countCode(report, "INVALID_JSON"))
	assert.Equal(t, issue.SeverityError, report.Issues[0].Severity)
}

func TestRunScriptFileInlineSuppression(t *testing.T) {
	dir := t.TempDir()
	source := strings.Join([]string{
		"# ignition-lint: disable-file=GLOBAL_VARIABLE_USAGE",
		"global counter",
		"",
	}, "\n")
	path := writeFile(t, dir, "lib.py", source)

	r := newRunner(t, Options{Mode: schema.ModeStrict})
	report := r.Run([]string{path})

	assert.Zero(t, countCode(report, "GLOBAL_VARIABLE_USAGE"), "issues: %+v", report.Issues)
	assert.Equal(t, 1, report.Suppressed)
}

func TestRunIgnoreFileSuppression(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "generated/view.json", badIconView)

	entries := suppress.ParseIgnoreFile("generated/**: MISSING_REQUIRED_PROPERTY")
	r := newRunner(t, Options{Mode: schema.ModeStrict, IgnoreEntries: entries})
	report := r.Run([]string{path})

	assert.Zero(t, countCode(report, "MISSING_REQUIRED_PROPERTY"))
	assert.Equal(t, 1, report.Suppressed)
}

func TestRunGlobalCodeSuppression(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "view.json", badIconView)

	r := newRunner(t, Options{
		Mode:               schema.ModeStrict,
		GlobalIgnoredCodes: []string{"MISSING_REQUIRED_PROPERTY"},
	})
	report := r.Run([]string{path})

	assert.Zero(t, countCode(report, "MISSING_REQUIRED_PROPERTY"))
	assert.Equal(t, 1, report.Suppressed)
}

func TestRunDeterministicOrder(t *testing.T) {
	dir := t.TempDir()
	long := "x = '" + strings.Repeat("a", 140) + "'\n"
	first := writeFile(t, dir, "a.py", long)
	second := writeFile(t, dir, "b.py", long)

	r := newRunner(t, Options{Mode: schema.ModeStrict, Workers: 4})
	for range 3 {
		report := r.Run([]string{first, second})
		require.Len(t, report.Issues, 2)
		assert.Equal(t, first, report.Issues[0].File)
		assert.Equal(t, second, report.Issues[1].File)
	}
}

func TestDiscoverProject(t *testing.T) {
	dir := t.TempDir()
	view := writeFile(t, dir,
		filepath.Join("com.inductiveautomation.perspective", "views", "Main", "Overview", "view.json"), goodView)
	scriptFile := writeFile(t, dir,
		filepath.Join("ignition", "script-python", "shared", "code.py"), "def util():\n\t\"\"\"Util.\"\"\"\n\treturn 1\n")
	writeFile(t, dir, "README.md", "not a lint target")

	files, err := DiscoverProject(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{view, scriptFile}, files)

	_, err = DiscoverProject(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestExpandPaths(t *testing.T) {
	dir := t.TempDir()
	view := writeFile(t, dir, filepath.Join("views", "Overview", "view.json"), goodView)
	scriptFile := writeFile(t, dir, filepath.Join("scripts", "code.py"), "x = 1\n")

	files, err := ExpandPaths([]string{dir})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{view, scriptFile}, files)

	files, err = ExpandPaths([]string{view, view})
	require.NoError(t, err)
	assert.Equal(t, []string{view}, files)

	_, err = ExpandPaths([]string{filepath.Join(dir, "absent")})
	assert.Error(t, err)
}
