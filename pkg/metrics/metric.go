// Package metrics scores parse outcomes. Each metric inspects the facts of
// one unit and returns a verdict with a 0..1 score, issues, and suggestions.
package metrics

import (
	"math"

	"github.com/mirelabs/mire/pkg/models"
)

// Metric scores one aspect of a unit.
type Metric interface {
	ID() string
	Weight() float64
	Analyze(outcome *models.ParseOutcome) (models.MetricVerdict, error)
}

// Thresholds parameterize the shared scoring curve.
type Thresholds struct {
	Excellent float64
	Good      float64
	Poor      float64
}

// ScoreByThreshold maps a raw value onto the nonlinear 0..1 scale: 0 at or
// below excellent, 0.3 at good, 0.7 at poor, then rising toward the cap.
func ScoreByThreshold(value float64, t Thresholds) float64 {
	switch {
	case value <= t.Excellent:
		return 0.0
	case value <= t.Good:
		return 0.3 * (value - t.Excellent) / (t.Good - t.Excellent)
	case value <= t.Poor:
		return 0.3 + 0.4*(value-t.Good)/(t.Poor-t.Good)
	default:
		return math.Min(1.0, 0.7+0.3*(value-t.Poor)/t.Poor)
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

func clamp01(v float64) float64 {
	return math.Min(1.0, math.Max(0.0, v))
}
