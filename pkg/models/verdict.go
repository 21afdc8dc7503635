package models

import "math"

// MetricVerdict is one metric's judgement of one unit.
type MetricVerdict struct {
	MetricID    string         `json:"metric_id"`
	Score       float64        `json:"score"` // 0.0 (clean) .. 1.0 (worst)
	Weight      float64        `json:"weight"`
	Issues      []IssueRecord  `json:"issues,omitempty"`
	Suggestions []string       `json:"suggestions,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
}

// WeightedScore is the verdict's contribution to the composite.
func (v *MetricVerdict) WeightedScore() float64 {
	return v.Score * v.Weight
}

// AddSuggestion appends a suggestion, skipping duplicates.
func (v *MetricVerdict) AddSuggestion(s string) {
	for _, have := range v.Suggestions {
		if have == s {
			return
		}
	}
	v.Suggestions = append(v.Suggestions, s)
}

// FileStatus is the terminal state of one unit in a run.
type FileStatus string

const (
	StatusScored      FileStatus = "scored"
	StatusParseFailed FileStatus = "parse_failed"
	StatusSkipped     FileStatus = "skipped"
	StatusTimedOut    FileStatus = "timed_out"
)

// FileVerdict is the full result for one unit: outcome, per-metric verdicts,
// composite score and tier, plus any errors that occurred along the way.
type FileVerdict struct {
	Outcome  *ParseOutcome   `json:"outcome,omitempty"`
	Verdicts []MetricVerdict `json:"verdicts,omitempty"`
	Score    float64         `json:"score"`
	Tier     Tier            `json:"tier,omitempty"`
	Status   FileStatus      `json:"status"`
	Errors   []string        `json:"errors,omitempty"`
}

// Path returns the unit path, empty when no outcome was produced.
func (f *FileVerdict) Path() string {
	if f.Outcome == nil {
		return ""
	}
	return f.Outcome.Unit.Path
}

// Scorable reports whether the file contributes to the project aggregate.
func (f *FileVerdict) Scorable() bool {
	return f.Status == StatusScored && len(f.Verdicts) > 0
}

// IssueCount totals issues across all metric verdicts.
func (f *FileVerdict) IssueCount() int {
	n := 0
	for _, v := range f.Verdicts {
		n += len(v.Issues)
	}
	return n
}

// IssuesBySeverity buckets the file's issues by severity.
func (f *FileVerdict) IssuesBySeverity() map[Severity]int {
	out := make(map[Severity]int)
	for _, v := range f.Verdicts {
		for _, iss := range v.Issues {
			out[iss.Severity]++
		}
	}
	return out
}

// CompositeScore collapses metric verdicts into a 0-100 score rounded to one
// decimal. Weights are renormalized over the verdicts present; if every
// weight is zero the plain mean of the scores is used. No verdicts scores 0.
func CompositeScore(verdicts []MetricVerdict) float64 {
	if len(verdicts) == 0 {
		return 0
	}
	var weighted, totalWeight float64
	for _, v := range verdicts {
		weighted += v.WeightedScore()
		totalWeight += v.Weight
	}
	var score float64
	if totalWeight > 0 {
		score = weighted / totalWeight
	} else {
		var sum float64
		for _, v := range verdicts {
			sum += v.Score
		}
		score = sum / float64(len(verdicts))
	}
	return math.Round(score*100*10) / 10
}

// ScoreStats summarizes the scored-file score distribution.
type ScoreStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev"`
}

// ProjectSummary carries run-level counters for reporting.
type ProjectSummary struct {
	TotalFiles     int              `json:"total_files"`
	ScoredFiles    int              `json:"scored_files"`
	FailedFiles    int              `json:"failed_files"`
	SkippedFiles   int              `json:"skipped_files"`
	TotalLines     int              `json:"total_lines"`
	TotalFunctions int              `json:"total_functions"`
	TotalIssues    int              `json:"total_issues"`
	IssueSeverity  map[Severity]int `json:"issue_severity,omitempty"`
	Languages      map[Language]int `json:"languages,omitempty"`
	Scores         ScoreStats       `json:"scores"`
}

// ProjectVerdict is the sealed result of one run.
type ProjectVerdict struct {
	Files       []FileVerdict  `json:"files"`
	Score       float64        `json:"score"`
	Tier        Tier           `json:"tier"`
	Summary     ProjectSummary `json:"summary"`
	Diagnostics []string       `json:"diagnostics,omitempty"`
}

// WorstFiles returns indexes into Files ordered worst score first. Only
// scorable files are included.
func (p *ProjectVerdict) WorstFiles() []int {
	var idx []int
	for i := range p.Files {
		if p.Files[i].Scorable() {
			idx = append(idx, i)
		}
	}
	for i := 1; i < len(idx); i++ {
		for j := i; j > 0 && p.Files[idx[j]].Score > p.Files[idx[j-1]].Score; j-- {
			idx[j], idx[j-1] = idx[j-1], idx[j]
		}
	}
	return idx
}
