package metrics

import (
	"fmt"
	"math"

	"github.com/mirelabs/mire/pkg/models"
)

// Function length and parameter count thresholds.
const (
	lengthExcellent = 20
	lengthGood      = 40
	lengthPoor      = 120

	paramExcellent = 3
	paramGood      = 5
	paramPoor      = 8
)

// LengthMetric scores function length and parameter counts.
type LengthMetric struct {
	weight float64
}

func NewLengthMetric(weight float64) *LengthMetric {
	return &LengthMetric{weight: weight}
}

func (m *LengthMetric) ID() string      { return IDLength }
func (m *LengthMetric) Weight() float64 { return m.weight }

func (m *LengthMetric) Analyze(outcome *models.ParseOutcome) (models.MetricVerdict, error) {
	verdict := models.MetricVerdict{MetricID: m.ID(), Weight: m.weight}

	funcs := outcome.AllFunctions()
	if len(funcs) == 0 {
		verdict.Details = map[string]any{"message": "no functions found"}
		return verdict, nil
	}

	var totalLen, totalParams int
	maxLen, minLen := funcs[0].LineCount(), funcs[0].LineCount()
	maxParams := funcs[0].Parameters
	for _, f := range funcs {
		totalLen += f.LineCount()
		totalParams += f.Parameters
		maxLen = max(maxLen, f.LineCount())
		minLen = min(minLen, f.LineCount())
		maxParams = max(maxParams, f.Parameters)
	}
	avgLen := float64(totalLen) / float64(len(funcs))
	avgParams := float64(totalParams) / float64(len(funcs))

	verdict.Score = m.score(funcs, avgLen, avgParams)
	verdict.Issues = m.issues(funcs)
	verdict.Details = map[string]any{
		"function_count":         len(funcs),
		"average_length":         round1(avgLen),
		"max_length":             maxLen,
		"min_length":             minLen,
		"average_parameters":     round1(avgParams),
		"max_parameters":         maxParams,
		"length_distribution":    lengthDistribution(funcs),
		"parameter_distribution": parameterDistribution(funcs),
	}
	m.suggest(&verdict, avgLen, maxLen, avgParams, maxParams)

	return verdict, nil
}

func (m *LengthMetric) score(funcs []models.FunctionFact, avgLen, avgParams float64) float64 {
	lengthScore := ScoreByThreshold(avgLen, Thresholds{
		Excellent: lengthExcellent,
		Good:      lengthGood,
		Poor:      lengthPoor,
	})
	paramScore := ScoreByThreshold(avgParams, Thresholds{
		Excellent: paramExcellent,
		Good:      paramGood,
		Poor:      paramPoor,
	})
	score := lengthScore*0.7 + paramScore*0.3

	veryLong, manyParams := 0, 0
	for _, f := range funcs {
		if f.LineCount() > 200 {
			veryLong++
		}
		if f.Parameters > 10 {
			manyParams++
		}
	}
	if veryLong > 0 {
		score += math.Min(0.3, float64(veryLong)/float64(len(funcs)))
	}
	if manyParams > 0 {
		score += math.Min(0.2, float64(manyParams)/float64(len(funcs)))
	}

	return math.Min(1.0, score)
}

func (m *LengthMetric) issues(funcs []models.FunctionFact) []models.IssueRecord {
	var issues []models.IssueRecord
	for _, f := range funcs {
		lines := f.LineCount()
		switch {
		case lines > lengthPoor:
			severity := models.SeverityHigh
			if lines > 200 {
				severity = models.SeverityCritical
			}
			issues = append(issues, models.IssueRecord{
				Message:    fmt.Sprintf("function %q is too long (%d lines)", f.Name, lines),
				Severity:   severity,
				Line:       f.StartLine,
				Rule:       "long_function",
				Suggestion: "split the function along its responsibilities",
				Context: map[string]any{
					"function_name": f.Name,
					"length":        lines,
					"threshold":     lengthPoor,
					"owner_type":    f.OwnerType,
				},
			})
		case lines > lengthGood:
			issues = append(issues, models.IssueRecord{
				Message:    fmt.Sprintf("function %q is getting long (%d lines)", f.Name, lines),
				Severity:   models.SeverityMedium,
				Line:       f.StartLine,
				Rule:       "medium_long_function",
				Suggestion: "consider breaking the function into smaller pieces",
				Context: map[string]any{
					"function_name": f.Name,
					"length":        lines,
					"threshold":     lengthGood,
				},
			})
		}

		switch {
		case f.Parameters > paramPoor:
			severity := models.SeverityMedium
			if f.Parameters > 10 {
				severity = models.SeverityHigh
			}
			issues = append(issues, models.IssueRecord{
				Message:    fmt.Sprintf("function %q takes too many parameters (%d)", f.Name, f.Parameters),
				Severity:   severity,
				Line:       f.StartLine,
				Rule:       "too_many_parameters",
				Suggestion: "bundle related parameters into a single options value",
				Context: map[string]any{
					"function_name":   f.Name,
					"parameter_count": f.Parameters,
					"threshold":       paramPoor,
				},
			})
		case f.Parameters > paramGood:
			issues = append(issues, models.IssueRecord{
				Message:    fmt.Sprintf("function %q takes many parameters (%d)", f.Name, f.Parameters),
				Severity:   models.SeverityLow,
				Line:       f.StartLine,
				Rule:       "many_parameters",
				Suggestion: "reduce the parameter count to keep the function cohesive",
				Context: map[string]any{
					"function_name":   f.Name,
					"parameter_count": f.Parameters,
					"threshold":       paramGood,
				},
			})
		}
	}
	return issues
}

func lengthDistribution(funcs []models.FunctionFact) map[string]int {
	dist := map[string]int{
		"short_1_20":       0,
		"medium_21_40":     0,
		"long_41_80":       0,
		"very_long_81_120": 0,
		"extreme_121_plus": 0,
	}
	for _, f := range funcs {
		switch l := f.LineCount(); {
		case l <= 20:
			dist["short_1_20"]++
		case l <= 40:
			dist["medium_21_40"]++
		case l <= 80:
			dist["long_41_80"]++
		case l <= 120:
			dist["very_long_81_120"]++
		default:
			dist["extreme_121_plus"]++
		}
	}
	return dist
}

func parameterDistribution(funcs []models.FunctionFact) map[string]int {
	dist := map[string]int{
		"few_0_3":         0,
		"normal_4_5":      0,
		"many_6_8":        0,
		"too_many_9_plus": 0,
	}
	for _, f := range funcs {
		switch p := f.Parameters; {
		case p <= 3:
			dist["few_0_3"]++
		case p <= 5:
			dist["normal_4_5"]++
		case p <= 8:
			dist["many_6_8"]++
		default:
			dist["too_many_9_plus"]++
		}
	}
	return dist
}

func (m *LengthMetric) suggest(verdict *models.MetricVerdict, avgLen float64, maxLen int, avgParams float64, maxParams int) {
	if avgLen > 60 {
		verdict.AddSuggestion("average function length is high; refactor the longest functions")
	}
	if maxLen > 200 {
		verdict.AddSuggestion("extremely long functions exist; refactor those first")
	}
	if avgParams > 6 {
		verdict.AddSuggestion("parameter counts are high across the board; consider option structs")
	}
	if maxParams > 10 {
		verdict.AddSuggestion("functions with excessive parameters exist; redesign their signatures")
	}
	if len(verdict.Issues) > 0 {
		verdict.AddSuggestion("apply the single responsibility principle and split complex functions into simple ones")
		verdict.AddSuggestion("extract shared logic to cut duplication")
		verdict.AddSuggestion("use an options value or builder for functions that need many inputs")
	}

	long := 0
	for _, iss := range verdict.Issues {
		if iss.Rule == "long_function" || iss.Rule == "medium_long_function" {
			long++
		}
	}
	if float64(long)/math.Max(1, float64(len(verdict.Issues))) > 0.5 {
		verdict.AddSuggestion("long functions dominate the findings; agree on a length budget for new code")
	}
}
