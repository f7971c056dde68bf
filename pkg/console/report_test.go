package console

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignition-tooling/ignition-lint/pkg/issue"
)

func sampleReport() *issue.Report {
	report := issue.NewReport()
	report.Add(issue.Issue{
		Severity:      issue.SeverityError,
		Code:          "MISSING_REQUIRED_PROPERTY",
		Message:       `Component "ia.display.icon" is missing required property "props.path"`,
		File:          "views/Overview/view.json",
		ComponentPath: "root.children[0]",
		ComponentType: "ia.display.icon",
		Suggestion:    `Add "path" under props`,
	})
	report.Add(issue.Issue{
		Severity: issue.SeverityWarning,
		Code:     "GLOBAL_VARIABLE_USAGE",
		Message:  "Global variable usage detected",
		File:     "scripts/lib.py",
		Line:     12,
	})
	report.Suppressed = 2
	return report
}

func TestRenderTextContainsIssueDetail(t *testing.T) {
	out := RenderText(sampleReport(), issue.SeverityError)

	assert.Contains(t, out, "MISSING_REQUIRED_PROPERTY")
	assert.Contains(t, out, "root.children[0]")
	assert.Contains(t, out, "scripts/lib.py:12")
	assert.Contains(t, out, "1 error")
	assert.Contains(t, out, "1 warning")
	assert.Contains(t, out, "2 suppressed")
	assert.Contains(t, out, "failed")
}

func TestRenderTextPassVerdict(t *testing.T) {
	report := issue.NewReport()
	report.Add(issue.Issue{
		Severity: issue.SeverityInfo,
		Code:     "MISSING_TAG_FALLBACK",
		Message:  "Tag binding on props.text sets no fallbackDelay",
		File:     "view.json",
	})

	out := RenderText(report, issue.SeverityWarning)
	assert.Contains(t, out, "passed")

	out = RenderText(report, issue.SeverityInfo)
	assert.Contains(t, out, "failed")
}

func TestRenderTextEmptyReport(t *testing.T) {
	out := RenderText(issue.NewReport(), issue.SeverityWarning)
	assert.Contains(t, out, "no issues")
	assert.Contains(t, out, "passed")
}

func TestRenderJSONRoundTrip(t *testing.T) {
	data, err := RenderJSON(sampleReport())
	require.NoError(t, err)

	var decoded issue.Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Issues, 2)
	assert.Equal(t, "MISSING_REQUIRED_PROPERTY", decoded.Issues[0].Code)
	assert.Equal(t, issue.SeverityError, decoded.Issues[0].Severity)
	assert.Equal(t, 2, decoded.Suppressed)
}
