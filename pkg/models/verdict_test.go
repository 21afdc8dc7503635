package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompositeScoreWeighted(t *testing.T) {
	verdicts := []MetricVerdict{
		{MetricID: "complexity", Score: 0.5, Weight: 0.30},
		{MetricID: "length", Score: 0.2, Weight: 0.20},
		{MetricID: "comments", Score: 0.1, Weight: 0.15},
	}
	// (0.15 + 0.04 + 0.015) / 0.65 * 100 = 31.538..., rounded to one decimal.
	assert.InDelta(t, 31.5, CompositeScore(verdicts), 1e-9)
}

func TestCompositeScoreZeroWeights(t *testing.T) {
	verdicts := []MetricVerdict{
		{Score: 0.2, Weight: 0},
		{Score: 0.6, Weight: 0},
	}
	// All-zero weights fall back to the plain mean.
	assert.InDelta(t, 40.0, CompositeScore(verdicts), 1e-9)
}

func TestCompositeScoreEmpty(t *testing.T) {
	assert.Zero(t, CompositeScore(nil))
}

func TestAddSuggestionDeduplicates(t *testing.T) {
	v := MetricVerdict{}
	v.AddSuggestion("a")
	v.AddSuggestion("b")
	v.AddSuggestion("a")
	assert.Equal(t, []string{"a", "b"}, v.Suggestions)
}

func TestFileVerdictScorable(t *testing.T) {
	scored := FileVerdict{Status: StatusScored, Verdicts: []MetricVerdict{{}}}
	assert.True(t, scored.Scorable())

	noVerdicts := FileVerdict{Status: StatusScored}
	assert.False(t, noVerdicts.Scorable())

	failed := FileVerdict{Status: StatusParseFailed, Verdicts: []MetricVerdict{{}}}
	assert.False(t, failed.Scorable())
}

func TestIssuesBySeverity(t *testing.T) {
	fv := FileVerdict{Verdicts: []MetricVerdict{
		{Issues: []IssueRecord{{Severity: SeverityHigh}, {Severity: SeverityMedium}}},
		{Issues: []IssueRecord{{Severity: SeverityHigh}}},
	}}
	got := fv.IssuesBySeverity()
	assert.Equal(t, 2, got[SeverityHigh])
	assert.Equal(t, 1, got[SeverityMedium])
	assert.Equal(t, 3, fv.IssueCount())
}

func TestWorstFiles(t *testing.T) {
	pv := ProjectVerdict{Files: []FileVerdict{
		{Status: StatusScored, Verdicts: []MetricVerdict{{}}, Score: 10},
		{Status: StatusParseFailed, Score: 99},
		{Status: StatusScored, Verdicts: []MetricVerdict{{}}, Score: 80},
		{Status: StatusScored, Verdicts: []MetricVerdict{{}}, Score: 40},
	}}
	// Unscorable files never appear, the rest come worst first.
	assert.Equal(t, []int{2, 3, 0}, pv.WorstFiles())
}
