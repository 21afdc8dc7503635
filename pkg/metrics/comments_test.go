package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirelabs/mire/pkg/models"
)

func TestCommentsOptimalRatioDocumentedFile(t *testing.T) {
	m := NewCommentsMetric(0.15)
	o := &models.ParseOutcome{
		TotalLines:   100,
		CommentLines: 20, // 20%, inside the optimal band
		Functions: []models.FunctionFact{
			{Name: "run", HasDoc: true, Visibility: models.VisibilityPublic, StartLine: 1, EndLine: 5},
		},
		Types: []models.TypeFact{{Name: "Runner", HasDoc: true}},
	}
	v, err := m.Analyze(o)
	require.NoError(t, err)

	// Ratio score is zero in the band. Doc coverage is complete, but the
	// complex-function term contributes 0.2 when no complex functions
	// exist: 0.6 * 0.2 = 0.12.
	assert.InDelta(t, 0.12, v.Score, 1e-9)
	assert.Empty(t, v.Issues)
}

func TestCommentsBareFile(t *testing.T) {
	m := NewCommentsMetric(0.15)
	o := &models.ParseOutcome{TotalLines: 100, CommentLines: 5}
	v, err := m.Analyze(o)
	require.NoError(t, err)

	// Ratio 5% scores the flat 0.8; with no functions or types every doc
	// term is fully missing: 0.4*0.8 + 0.6*1.0 = 0.92.
	assert.InDelta(t, 0.92, v.Score, 1e-9)

	require.Len(t, v.Issues, 1)
	assert.Equal(t, "insufficient_comments", v.Issues[0].Rule)
	assert.Equal(t, models.SeverityHigh, v.Issues[0].Severity)
}

func TestCommentsLowBandInterpolation(t *testing.T) {
	m := NewCommentsMetric(0.15)
	o := &models.ParseOutcome{TotalLines: 1000, CommentLines: 125} // 12.5%
	v, err := m.Analyze(o)
	require.NoError(t, err)

	// Ratio score interpolates: 0.4 * (0.15-0.125)/0.05 = 0.2.
	assert.InDelta(t, 0.4*0.2+0.6*1.0, v.Score, 1e-9)

	require.Len(t, v.Issues, 1)
	assert.Equal(t, "low_comments", v.Issues[0].Rule)
	assert.Equal(t, models.SeverityMedium, v.Issues[0].Severity)
}

func TestCommentsExcessive(t *testing.T) {
	m := NewCommentsMetric(0.15)
	o := &models.ParseOutcome{TotalLines: 100, CommentLines: 40}
	v, err := m.Analyze(o)
	require.NoError(t, err)

	require.Len(t, v.Issues, 1)
	assert.Equal(t, "excessive_comments", v.Issues[0].Rule)
	assert.Equal(t, models.SeverityLow, v.Issues[0].Severity)
}

func TestCommentsMissingDocIssues(t *testing.T) {
	m := NewCommentsMetric(0.15)
	o := &models.ParseOutcome{
		TotalLines:   100,
		CommentLines: 20,
		Functions: []models.FunctionFact{
			{Name: "a", Visibility: models.VisibilityPublic, StartLine: 1, EndLine: 2},
			{Name: "b", Visibility: models.VisibilityPublic, StartLine: 3, EndLine: 4},
			{Name: "_hidden", Visibility: models.VisibilityProtected, StartLine: 5, EndLine: 6},
			{Name: "gnarly", Visibility: models.VisibilityPublic, Complexity: 15, StartLine: 7, EndLine: 9},
		},
		Types: []models.TypeFact{{Name: "Bare", StartLine: 20}},
	}
	v, err := m.Analyze(o)
	require.NoError(t, err)

	rules := map[string]int{}
	for _, iss := range v.Issues {
		rules[iss.Rule]++
	}
	// Private functions are exempt from the public check; the complex one
	// shows up in both lists.
	assert.Equal(t, 3, rules["missing_function_docstring"])
	assert.Equal(t, 1, rules["missing_complex_function_docstring"])
	assert.Equal(t, 1, rules["missing_type_docstring"])
}

func TestCommentsPublicIssueCap(t *testing.T) {
	m := NewCommentsMetric(0.15)
	o := &models.ParseOutcome{TotalLines: 100, CommentLines: 20}
	for i := 0; i < 8; i++ {
		o.Functions = append(o.Functions, models.FunctionFact{
			Name: "f", Visibility: models.VisibilityPublic, StartLine: i + 1, EndLine: i + 1,
		})
	}
	v, err := m.Analyze(o)
	require.NoError(t, err)

	count := 0
	for _, iss := range v.Issues {
		if iss.Rule == "missing_function_docstring" {
			count++
		}
	}
	assert.Equal(t, 5, count)
}
