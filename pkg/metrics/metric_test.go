package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreByThreshold(t *testing.T) {
	th := Thresholds{Excellent: 5, Good: 10, Poor: 20}

	tests := []struct {
		value float64
		want  float64
	}{
		{0, 0},
		{5, 0},
		{7.5, 0.15},
		{10, 0.3},
		{15, 0.5},
		{20, 0.7},
		{30, 0.85},
		{40, 1.0},
		{1000, 1.0}, // capped
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, ScoreByThreshold(tt.value, th), 1e-9, "value %.1f", tt.value)
	}
}

func TestDefaultWeights(t *testing.T) {
	w := DefaultWeights()
	assert.InDelta(t, 0.30, w[IDComplexity], 1e-9)
	assert.InDelta(t, 0.20, w[IDLength], 1e-9)
	assert.InDelta(t, 0.15, w[IDComments], 1e-9)

	// Mutating the copy must not touch the defaults.
	w[IDComplexity] = 0
	assert.InDelta(t, 0.30, DefaultWeights()[IDComplexity], 1e-9)
}

func TestRegistryOverrides(t *testing.T) {
	r := NewRegistry(map[string]float64{
		IDComplexity: 0.5,
		"unknown":    0.9,
	})
	byID := map[string]Metric{}
	for _, m := range r.Metrics() {
		byID[m.ID()] = m
	}
	assert.Len(t, byID, 3)
	assert.InDelta(t, 0.5, byID[IDComplexity].Weight(), 1e-9)
	assert.InDelta(t, 0.20, byID[IDLength].Weight(), 1e-9)
	_, hasUnknown := byID["unknown"]
	assert.False(t, hasUnknown)
}
