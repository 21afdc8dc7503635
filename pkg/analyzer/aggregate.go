package analyzer

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/mirelabs/mire/pkg/models"
)

// File weight bounds: a file's pull on the project score grows with its
// code size but stays within half to triple the weight of a 100-line file.
const (
	weightFloor = 0.5
	weightCeil  = 3.0
)

// fileWeight scales a file's contribution by its code volume.
func fileWeight(codeLines int) float64 {
	w := float64(codeLines) / 100.0
	return math.Min(weightCeil, math.Max(weightFloor, w))
}

// aggregate seals the project verdict from sorted file verdicts.
func (a *Analyzer) aggregate(files []models.FileVerdict) *models.ProjectVerdict {
	pv := &models.ProjectVerdict{Files: files}

	var weighted, totalWeight float64
	var scores []float64

	for i := range files {
		fv := &files[i]
		pv.Summary.TotalFiles++
		switch fv.Status {
		case models.StatusScored:
			pv.Summary.ScoredFiles++
		case models.StatusSkipped:
			pv.Summary.SkippedFiles++
		default:
			pv.Summary.FailedFiles++
		}

		if fv.Outcome != nil {
			pv.Summary.TotalLines += fv.Outcome.TotalLines
			pv.Summary.TotalFunctions += fv.Outcome.FunctionCount()
			if fv.Outcome.Unit.Language != models.LangUnknown {
				if pv.Summary.Languages == nil {
					pv.Summary.Languages = make(map[models.Language]int)
				}
				pv.Summary.Languages[fv.Outcome.Unit.Language]++
			}
		}

		for sev, n := range fv.IssuesBySeverity() {
			if pv.Summary.IssueSeverity == nil {
				pv.Summary.IssueSeverity = make(map[models.Severity]int)
			}
			pv.Summary.IssueSeverity[sev] += n
			pv.Summary.TotalIssues += n
		}

		if !fv.Scorable() {
			continue
		}
		w := fileWeight(fv.Outcome.CodeLines)
		weighted += fv.Score * w
		totalWeight += w
		scores = append(scores, fv.Score)
	}

	if len(scores) == 0 {
		pv.Score = 0
		pv.Tier = models.TierExcellent
		pv.Diagnostics = append(pv.Diagnostics, "no analyzable files")
		return pv
	}

	pv.Score = math.Round(weighted/totalWeight*10) / 10
	pv.Tier = models.TierForScore(pv.Score)
	pv.Summary.Scores = scoreStats(scores)
	return pv
}

// scoreStats summarizes the scored-file distribution.
func scoreStats(scores []float64) models.ScoreStats {
	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)

	return models.ScoreStats{
		Mean:   stat.Mean(sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		StdDev: stdDevOrZero(sorted),
	}
}

// stdDevOrZero avoids the NaN gonum returns for a single sample.
func stdDevOrZero(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return stat.StdDev(values, nil)
}
