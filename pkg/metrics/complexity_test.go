package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirelabs/mire/pkg/models"
)

func outcomeWithComplexities(complexities ...int) *models.ParseOutcome {
	o := &models.ParseOutcome{}
	for i, c := range complexities {
		o.Functions = append(o.Functions, models.FunctionFact{
			Name:       "f",
			StartLine:  i*10 + 1,
			EndLine:    i*10 + 5,
			Complexity: c,
		})
	}
	return o
}

func TestComplexityNoFunctions(t *testing.T) {
	m := NewComplexityMetric(0.30)
	v, err := m.Analyze(&models.ParseOutcome{})
	require.NoError(t, err)
	assert.Zero(t, v.Score)
	assert.Empty(t, v.Issues)
	assert.Equal(t, "no functions found", v.Details["message"])
}

func TestComplexityScore(t *testing.T) {
	m := NewComplexityMetric(0.30)

	// avg 13 -> base 0.42; one of three over 15 -> penalty min(0.3, 1/3) = 0.3;
	// max 25 > 20 -> +0.1.
	v, err := m.Analyze(outcomeWithComplexities(2, 12, 25))
	require.NoError(t, err)
	assert.InDelta(t, 0.82, v.Score, 1e-9)
}

func TestComplexityScoreClean(t *testing.T) {
	m := NewComplexityMetric(0.30)
	v, err := m.Analyze(outcomeWithComplexities(1, 2, 3))
	require.NoError(t, err)
	assert.Zero(t, v.Score)
	assert.Empty(t, v.Issues)
	assert.Empty(t, v.Suggestions)
}

func TestComplexityIssues(t *testing.T) {
	m := NewComplexityMetric(0.30)
	v, err := m.Analyze(outcomeWithComplexities(8, 12, 25, 35))
	require.NoError(t, err)

	require.Len(t, v.Issues, 3)
	byRule := map[string][]models.IssueRecord{}
	for _, iss := range v.Issues {
		byRule[iss.Rule] = append(byRule[iss.Rule], iss)
	}
	require.Len(t, byRule["medium_complexity"], 1)
	assert.Equal(t, models.SeverityMedium, byRule["medium_complexity"][0].Severity)
	require.Len(t, byRule["high_complexity"], 2)
	assert.Equal(t, models.SeverityHigh, byRule["high_complexity"][0].Severity)
	assert.Equal(t, models.SeverityCritical, byRule["high_complexity"][1].Severity)
	assert.Equal(t, 21, byRule["high_complexity"][0].Line)
}

func TestComplexityDistribution(t *testing.T) {
	m := NewComplexityMetric(0.30)
	v, err := m.Analyze(outcomeWithComplexities(1, 5, 6, 11, 16, 21, 40))
	require.NoError(t, err)

	dist := v.Details["complexity_distribution"].(map[string]int)
	assert.Equal(t, 2, dist["low_1_5"])
	assert.Equal(t, 1, dist["medium_6_10"])
	assert.Equal(t, 1, dist["high_11_15"])
	assert.Equal(t, 1, dist["very_high_16_20"])
	assert.Equal(t, 2, dist["extreme_21_plus"])
}

func TestComplexitySuggestions(t *testing.T) {
	m := NewComplexityMetric(0.30)
	v, err := m.Analyze(outcomeWithComplexities(25, 35))
	require.NoError(t, err)

	// avg 30 > 15, max 35 > 30, issues present, all issues severe.
	assert.GreaterOrEqual(t, len(v.Suggestions), 5)
}
