package metrics

import (
	"fmt"

	"github.com/mirelabs/mire/pkg/models"
)

// Comment ratio band: the sweet spot is 15-25 percent, anything under 10 is
// a serious gap.
const (
	ratioOptimalMin = 0.15
	ratioOptimalMax = 0.25
	ratioMinimum    = 0.10
)

// CommentsMetric scores comment density and documentation coverage.
type CommentsMetric struct {
	weight float64
}

func NewCommentsMetric(weight float64) *CommentsMetric {
	return &CommentsMetric{weight: weight}
}

func (m *CommentsMetric) ID() string      { return IDComments }
func (m *CommentsMetric) Weight() float64 { return m.weight }

// docStats summarizes how much of the unit is documented.
type docStats struct {
	functionRatio float64
	typeRatio     float64
	publicRatio   float64
	complexRatio  float64
	overallRatio  float64

	publicTotal  int
	publicWith   int
	complexTotal int
	complexWith  int
}

func (m *CommentsMetric) Analyze(outcome *models.ParseOutcome) (models.MetricVerdict, error) {
	verdict := models.MetricVerdict{MetricID: m.ID(), Weight: m.weight}

	ratio := outcome.CommentRatio()
	funcs := outcome.AllFunctions()
	stats := analyzeDocs(funcs, outcome.Types)

	verdict.Score = m.score(ratio, stats)
	verdict.Issues = m.issues(ratio, funcs, outcome.Types)
	verdict.Details = map[string]any{
		"total_lines":           outcome.TotalLines,
		"comment_lines":         outcome.CommentLines,
		"comment_ratio":         round3(ratio),
		"comment_ratio_percent": round1(ratio * 100),
		"function_doc_ratio":    round3(stats.functionRatio),
		"type_doc_ratio":        round3(stats.typeRatio),
		"public_doc_ratio":      round3(stats.publicRatio),
		"complex_doc_ratio":     round3(stats.complexRatio),
		"overall_doc_ratio":     round3(stats.overallRatio),
		"public_functions":      stats.publicTotal,
		"documented_public":     stats.publicWith,
		"complex_functions":     stats.complexTotal,
		"documented_complex":    stats.complexWith,
		"comment_quality":       assessQuality(ratio),
	}
	m.suggest(&verdict, ratio, stats)

	return verdict, nil
}

// isComplex flags functions whose size or branching warrants documentation.
func isComplex(f models.FunctionFact) bool {
	return f.Complexity > 10 || f.LineCount() > 50
}

func analyzeDocs(funcs []models.FunctionFact, types []models.TypeFact) docStats {
	var s docStats

	funcWith := 0
	for _, f := range funcs {
		if f.HasDoc {
			funcWith++
		}
		if !f.IsPrivate() {
			s.publicTotal++
			if f.HasDoc {
				s.publicWith++
			}
		}
		if isComplex(f) {
			s.complexTotal++
			if f.HasDoc {
				s.complexWith++
			}
		}
	}
	typeWith := 0
	for _, t := range types {
		if t.HasDoc {
			typeWith++
		}
	}

	if len(funcs) > 0 {
		s.functionRatio = float64(funcWith) / float64(len(funcs))
	}
	if len(types) > 0 {
		s.typeRatio = float64(typeWith) / float64(len(types))
	}
	if s.publicTotal > 0 {
		s.publicRatio = float64(s.publicWith) / float64(s.publicTotal)
	}
	if s.complexTotal > 0 {
		s.complexRatio = float64(s.complexWith) / float64(s.complexTotal)
	}
	if len(funcs) > 0 || len(types) > 0 {
		s.overallRatio = (s.functionRatio + s.typeRatio) / 2
	}
	return s
}

func (m *CommentsMetric) score(ratio float64, stats docStats) float64 {
	var ratioScore float64
	switch {
	case ratio >= ratioOptimalMin && ratio <= ratioOptimalMax:
		ratioScore = 0.0
	case ratio < ratioMinimum:
		ratioScore = 0.8
	case ratio < ratioOptimalMin:
		ratioScore = 0.4 * (ratioOptimalMin - ratio) / (ratioOptimalMin - ratioMinimum)
	default:
		excess := ratio - ratioOptimalMax
		ratioScore = min(0.6, 0.2+excess*2)
	}

	docScore := (1-stats.overallRatio)*0.4 +
		(1-stats.publicRatio)*0.4 +
		(1-stats.complexRatio)*0.2

	return clamp01(ratioScore*0.4 + docScore*0.6)
}

func (m *CommentsMetric) issues(ratio float64, funcs []models.FunctionFact, types []models.TypeFact) []models.IssueRecord {
	var issues []models.IssueRecord

	switch {
	case ratio < ratioMinimum:
		issues = append(issues, models.IssueRecord{
			Message:    fmt.Sprintf("comment ratio is far too low (%.1f%%)", ratio*100),
			Severity:   models.SeverityHigh,
			Rule:       "insufficient_comments",
			Suggestion: "raise the comment ratio toward 15-25%",
			Context:    map[string]any{"comment_ratio": ratio, "threshold": ratioMinimum},
		})
	case ratio < ratioOptimalMin:
		issues = append(issues, models.IssueRecord{
			Message:    fmt.Sprintf("comment ratio is on the low side (%.1f%%)", ratio*100),
			Severity:   models.SeverityMedium,
			Rule:       "low_comments",
			Suggestion: "raise the comment ratio toward 15-25%",
			Context:    map[string]any{"comment_ratio": ratio, "threshold": ratioOptimalMin},
		})
	case ratio > ratioOptimalMax*1.5:
		issues = append(issues, models.IssueRecord{
			Message:    fmt.Sprintf("comment ratio is very high (%.1f%%), comments may be redundant", ratio*100),
			Severity:   models.SeverityLow,
			Rule:       "excessive_comments",
			Suggestion: "trim comments that restate the code",
			Context:    map[string]any{"comment_ratio": ratio, "threshold": ratioOptimalMax},
		})
	}

	publicShown := 0
	for _, f := range funcs {
		if f.HasDoc || f.IsPrivate() || publicShown >= 5 {
			continue
		}
		publicShown++
		issues = append(issues, models.IssueRecord{
			Message:    fmt.Sprintf("public function %q has no doc string", f.Name),
			Severity:   models.SeverityMedium,
			Line:       f.StartLine,
			Rule:       "missing_function_docstring",
			Suggestion: "document what the function does, its inputs, and its result",
			Context:    map[string]any{"function_name": f.Name, "is_public": true},
		})
	}

	complexShown := 0
	for _, f := range funcs {
		if f.HasDoc || !isComplex(f) || complexShown >= 3 {
			continue
		}
		complexShown++
		issues = append(issues, models.IssueRecord{
			Message:    fmt.Sprintf("complex function %q has no doc string", f.Name),
			Severity:   models.SeverityHigh,
			Line:       f.StartLine,
			Rule:       "missing_complex_function_docstring",
			Suggestion: "complex functions need a thorough doc string",
			Context: map[string]any{
				"function_name": f.Name,
				"complexity":    f.Complexity,
				"line_count":    f.LineCount(),
			},
		})
	}

	typesShown := 0
	for _, t := range types {
		if t.HasDoc || typesShown >= 5 {
			continue
		}
		typesShown++
		issues = append(issues, models.IssueRecord{
			Message:    fmt.Sprintf("type %q has no doc string", t.Name),
			Severity:   models.SeverityMedium,
			Line:       t.StartLine,
			Rule:       "missing_type_docstring",
			Suggestion: "document the type's purpose and main responsibilities",
			Context:    map[string]any{"type_name": t.Name},
		})
	}

	return issues
}

func assessQuality(ratio float64) string {
	switch {
	case ratio >= ratioOptimalMin && ratio <= ratioOptimalMax:
		return "excellent"
	case ratio >= ratioMinimum && ratio < ratioOptimalMin:
		return "good"
	case ratio < ratioMinimum:
		return "insufficient"
	case ratio > ratioOptimalMax*1.5:
		return "excessive"
	default:
		return "fair"
	}
}

func (m *CommentsMetric) suggest(verdict *models.MetricVerdict, ratio float64, stats docStats) {
	switch {
	case ratio < ratioMinimum:
		verdict.AddSuggestion("comments are badly lacking; annotate the main functions and tricky logic")
	case ratio < ratioOptimalMin:
		verdict.AddSuggestion("add comments where the logic is dense, especially around core algorithms")
	}

	if stats.publicRatio < 0.8 {
		verdict.AddSuggestion("public interfaces lack documentation; add doc strings to every public function")
	}
	if stats.complexRatio < 0.7 {
		verdict.AddSuggestion("complex functions lack documentation; describe the high-complexity ones in detail")
	}
	if stats.typeRatio < 0.8 {
		verdict.AddSuggestion("types lack documentation; add a doc string to every type")
	}
	if len(verdict.Issues) > 0 {
		verdict.AddSuggestion("adopt one documentation style and use it consistently")
		verdict.AddSuggestion("write comments that explain why, not just what")
		verdict.AddSuggestion("review comments during code review so they stay in sync with the code")
	}
}
