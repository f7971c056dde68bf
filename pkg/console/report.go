package console

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ignition-tooling/ignition-lint/pkg/issue"
	"github.com/ignition-tooling/ignition-lint/pkg/logger"
)

var log = logger.New("console:report")

func severityStyle(sev issue.Severity) lipgloss.Style {
	switch sev {
	case issue.SeverityError:
		return errorStyle
	case issue.SeverityWarning:
		return warningStyle
	case issue.SeverityInfo:
		return infoStyle
	default:
		return styleStyle
	}
}

func severityLabel(sev issue.Severity) string {
	return strings.ToUpper(sev.String())
}

// RenderText renders a full report as styled terminal text: one line per
// issue with location detail, then the severity summary and verdict.
func RenderText(report *issue.Report, floor issue.Severity) string {
	var sb strings.Builder

	for _, iss := range report.Issues {
		sb.WriteString(FormatIssue(iss))
		sb.WriteByte('\n')
	}
	if len(report.Issues) > 0 {
		sb.WriteByte('\n')
	}
	sb.WriteString(renderSummary(report, floor))
	log.Printf("Rendered report: %d issues", len(report.Issues))
	return sb.String()
}

// FormatIssue renders one issue as a single line plus indented detail.
func FormatIssue(iss issue.Issue) string {
	var sb strings.Builder

	label := severityStyle(iss.Severity).Render(severityLabel(iss.Severity))
	sb.WriteString(fmt.Sprintf("%s %s %s", label, codeStyle.Render(iss.Code), iss.Message))

	location := iss.File
	if iss.Line > 0 {
		location = fmt.Sprintf("%s:%d", location, iss.Line)
		if iss.Column > 0 {
			location = fmt.Sprintf("%s:%d", location, iss.Column)
		}
	}
	if location != "" {
		sb.WriteString("\n  ")
		sb.WriteString(mutedStyle.Render(location))
	}
	if iss.ComponentPath != "" {
		detail := iss.ComponentPath
		if iss.ComponentType != "" {
			detail = fmt.Sprintf("%s (%s)", detail, iss.ComponentType)
		}
		sb.WriteString("\n  ")
		sb.WriteString(mutedStyle.Render(detail))
	}
	if iss.Suggestion != "" {
		sb.WriteString("\n  ")
		sb.WriteString(mutedStyle.Render("suggestion: " + iss.Suggestion))
	}
	return sb.String()
}

func renderSummary(report *issue.Report, floor issue.Severity) string {
	var sb strings.Builder

	parts := make([]string, 0, 4)
	for _, sev := range []issue.Severity{issue.SeverityError, issue.SeverityWarning, issue.SeverityInfo, issue.SeverityStyle} {
		if count := report.Count(sev); count > 0 {
			parts = append(parts, severityStyle(sev).Render(fmt.Sprintf("%d %s", count, sev)))
		}
	}
	if len(parts) == 0 {
		sb.WriteString(mutedStyle.Render("no issues"))
	} else {
		sb.WriteString(strings.Join(parts, mutedStyle.Render(", ")))
	}
	if report.Suppressed > 0 {
		sb.WriteString(mutedStyle.Render(fmt.Sprintf(" (%d suppressed)", report.Suppressed)))
	}
	sb.WriteByte('\n')

	if report.Passed(floor) {
		sb.WriteString(successStyle.Render("✓ passed"))
	} else {
		sb.WriteString(errorStyle.Render(fmt.Sprintf("✗ failed (severity floor: %s)", floor)))
	}
	sb.WriteByte('\n')
	return sb.String()
}

// RenderJSON renders the report in the stable machine shape.
func RenderJSON(report *issue.Report) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding report: %w", err)
	}
	return append(data, '\n'), nil
}
