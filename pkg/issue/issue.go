// Package issue defines the normalized finding model shared by every
// validator: a severity-graded, rule-coded issue with file and structural
// location, plus the aggregate report consumed by the presentation layer.
package issue

import "fmt"

// Severity grades a finding. The ordering matters: style < info < warning < error.
type Severity int

const (
	SeverityStyle Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

var severityNames = map[Severity]string{
	SeverityStyle:   "style",
	SeverityInfo:    "info",
	SeverityWarning: "warning",
	SeverityError:   "error",
}

// String returns the lowercase severity name.
func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// MarshalJSON renders the severity as its lowercase name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON parses a lowercase severity name.
func (s *Severity) UnmarshalJSON(data []byte) error {
	name := string(data)
	if len(name) >= 2 && name[0] == '"' && name[len(name)-1] == '"' {
		name = name[1 : len(name)-1]
	}
	parsed, err := ParseSeverity(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSeverity converts a severity name to its Severity value.
func ParseSeverity(name string) (Severity, error) {
	for sev, n := range severityNames {
		if n == name {
			return sev, nil
		}
	}
	return SeverityStyle, fmt.Errorf("unknown severity level: %q", name)
}

// AtLeast reports whether this severity is at or above the given floor.
func (s Severity) AtLeast(floor Severity) bool {
	return s >= floor
}

// Issue is one normalized lint finding. Issues are immutable once created.
type Issue struct {
	Severity      Severity `json:"severity"`
	Code          string   `json:"ruleCode"`
	Message       string   `json:"message"`
	File          string   `json:"file"`
	Line          int      `json:"line,omitempty"`
	Column        int      `json:"column,omitempty"`
	ComponentPath string   `json:"componentPath,omitempty"`
	ComponentType string   `json:"componentType,omitempty"`
	Suggestion    string   `json:"suggestion,omitempty"`
}

// Report aggregates the issues of one run after suppression has been applied.
type Report struct {
	Issues     []Issue        `json:"issues"`
	Counts     map[string]int `json:"counts"`
	Suppressed int            `json:"suppressed"`
}

// NewReport returns an empty report with initialized counts.
func NewReport() *Report {
	return &Report{Counts: make(map[string]int)}
}

// Add appends an issue and updates the severity counts.
func (r *Report) Add(iss Issue) {
	r.Issues = append(r.Issues, iss)
	r.Counts[iss.Severity.String()]++
}

// AddAll appends each issue in order.
func (r *Report) AddAll(issues []Issue) {
	for _, iss := range issues {
		r.Add(iss)
	}
}

// Merge folds another report into this one, preserving issue order.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.AddAll(other.Issues)
	r.Suppressed += other.Suppressed
}

// Count returns the number of issues at the given severity.
func (r *Report) Count(sev Severity) int {
	return r.Counts[sev.String()]
}

// Passed reports whether no issue reaches the given severity floor.
func (r *Report) Passed(floor Severity) bool {
	for _, iss := range r.Issues {
		if iss.Severity.AtLeast(floor) {
			return false
		}
	}
	return true
}
