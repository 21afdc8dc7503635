package metrics

import (
	"fmt"
	"math"

	"github.com/mirelabs/mire/pkg/models"
)

// Branch complexity thresholds.
const (
	complexityExcellent = 5
	complexityGood      = 10
	complexityPoor      = 20
)

// ComplexityMetric scores how tangled the control flow of a unit's
// functions is.
type ComplexityMetric struct {
	weight float64
}

func NewComplexityMetric(weight float64) *ComplexityMetric {
	return &ComplexityMetric{weight: weight}
}

func (m *ComplexityMetric) ID() string      { return IDComplexity }
func (m *ComplexityMetric) Weight() float64 { return m.weight }

func (m *ComplexityMetric) Analyze(outcome *models.ParseOutcome) (models.MetricVerdict, error) {
	verdict := models.MetricVerdict{MetricID: m.ID(), Weight: m.weight}

	funcs := outcome.AllFunctions()
	if len(funcs) == 0 {
		verdict.Details = map[string]any{"message": "no functions found"}
		return verdict, nil
	}

	total, maxC, minC := 0, funcs[0].Complexity, funcs[0].Complexity
	for _, f := range funcs {
		total += f.Complexity
		maxC = max(maxC, f.Complexity)
		minC = min(minC, f.Complexity)
	}
	avg := float64(total) / float64(len(funcs))

	verdict.Score = m.score(funcs, avg, maxC)
	verdict.Issues = m.issues(funcs)
	verdict.Details = map[string]any{
		"function_count":          len(funcs),
		"average_complexity":      round2(avg),
		"max_complexity":          maxC,
		"min_complexity":          minC,
		"complexity_distribution": complexityDistribution(funcs),
	}
	m.suggest(&verdict, avg, maxC)

	return verdict, nil
}

func (m *ComplexityMetric) score(funcs []models.FunctionFact, avg float64, maxC int) float64 {
	base := ScoreByThreshold(avg, Thresholds{
		Excellent: complexityExcellent,
		Good:      complexityGood,
		Poor:      complexityPoor,
	})

	highCount := 0
	for _, f := range funcs {
		if f.Complexity > 15 {
			highCount++
		}
	}
	penalty := math.Min(0.3, float64(highCount)/float64(len(funcs)))

	switch {
	case maxC > 30:
		penalty += 0.2
	case maxC > 20:
		penalty += 0.1
	}

	return clamp01(base + penalty)
}

func (m *ComplexityMetric) issues(funcs []models.FunctionFact) []models.IssueRecord {
	var issues []models.IssueRecord
	for _, f := range funcs {
		switch {
		case f.Complexity > complexityPoor:
			severity := models.SeverityHigh
			if f.Complexity > 30 {
				severity = models.SeverityCritical
			}
			issues = append(issues, models.IssueRecord{
				Message:    fmt.Sprintf("function %q has very high branch complexity (%d)", f.Name, f.Complexity),
				Severity:   severity,
				Line:       f.StartLine,
				Rule:       "high_complexity",
				Suggestion: "split the function and move each branch of logic into its own helper",
				Context: map[string]any{
					"function_name": f.Name,
					"complexity":    f.Complexity,
					"threshold":     complexityPoor,
					"owner_type":    f.OwnerType,
				},
			})
		case f.Complexity > complexityGood:
			issues = append(issues, models.IssueRecord{
				Message:    fmt.Sprintf("function %q has elevated branch complexity (%d)", f.Name, f.Complexity),
				Severity:   models.SeverityMedium,
				Line:       f.StartLine,
				Rule:       "medium_complexity",
				Suggestion: "simplify the control flow and reduce nesting",
				Context: map[string]any{
					"function_name": f.Name,
					"complexity":    f.Complexity,
					"threshold":     complexityGood,
				},
			})
		}
	}
	return issues
}

func complexityDistribution(funcs []models.FunctionFact) map[string]int {
	dist := map[string]int{
		"low_1_5":         0,
		"medium_6_10":     0,
		"high_11_15":      0,
		"very_high_16_20": 0,
		"extreme_21_plus": 0,
	}
	for _, f := range funcs {
		switch c := f.Complexity; {
		case c <= 5:
			dist["low_1_5"]++
		case c <= 10:
			dist["medium_6_10"]++
		case c <= 15:
			dist["high_11_15"]++
		case c <= 20:
			dist["very_high_16_20"]++
		default:
			dist["extreme_21_plus"]++
		}
	}
	return dist
}

func (m *ComplexityMetric) suggest(verdict *models.MetricVerdict, avg float64, maxC int) {
	if avg > 15 {
		verdict.AddSuggestion("overall branch complexity is high; refactor the most complex functions")
	}
	if maxC > 30 {
		verdict.AddSuggestion("extremely complex functions exist; refactor those first")
	}
	if len(verdict.Issues) > 0 {
		verdict.AddSuggestion("apply the single responsibility principle and split complex functions into simple ones")
		verdict.AddSuggestion("consider strategy or state patterns to flatten complex decision logic")
		verdict.AddSuggestion("reduce nesting with early returns")
	}

	severe := 0
	for _, iss := range verdict.Issues {
		if iss.Severity == models.SeverityHigh || iss.Severity == models.SeverityCritical {
			severe++
		}
	}
	if float64(severe)/math.Max(1, float64(len(verdict.Issues))) > 0.3 {
		verdict.AddSuggestion("a large share of functions are highly complex; plan a dedicated refactoring pass")
	}
}
