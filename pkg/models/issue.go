package models

// Severity ranks how bad an issue is.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// severityRank orders severities for sorting and comparisons.
var severityRank = map[Severity]int{
	SeverityInfo:     0,
	SeverityLow:      1,
	SeverityMedium:   2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

// Rank returns a sortable rank, higher meaning worse.
func (s Severity) Rank() int {
	return severityRank[s]
}

// IssueRecord is one finding emitted by a metric against a unit.
type IssueRecord struct {
	Message    string         `json:"message"`
	Severity   Severity       `json:"severity"`
	Line       int            `json:"line,omitempty"` // 0 when not tied to a line
	Rule       string         `json:"rule,omitempty"`
	Suggestion string         `json:"suggestion,omitempty"`
	Context    map[string]any `json:"context,omitempty"`
}
