package metrics

// Metric identifiers, also the keys for weight overrides.
const (
	IDComplexity = "complexity"
	IDLength     = "length"
	IDComments   = "comments"
)

// defaultWeights are the relative importance of each metric in the
// composite score.
var defaultWeights = map[string]float64{
	IDComplexity: 0.30,
	IDLength:     0.20,
	IDComments:   0.15,
}

// DefaultWeights returns a copy of the built-in weight table.
func DefaultWeights() map[string]float64 {
	out := make(map[string]float64, len(defaultWeights))
	for id, w := range defaultWeights {
		out[id] = w
	}
	return out
}

// Registry holds the metric set for a run. Weights are fixed at
// construction; overrides for unknown metric ids are ignored.
type Registry struct {
	metrics []Metric
}

// NewRegistry builds the standard metric set, applying any weight overrides
// over the defaults.
func NewRegistry(overrides map[string]float64) *Registry {
	weights := DefaultWeights()
	for id, w := range overrides {
		if _, known := weights[id]; known {
			weights[id] = w
		}
	}
	return &Registry{
		metrics: []Metric{
			NewComplexityMetric(weights[IDComplexity]),
			NewLengthMetric(weights[IDLength]),
			NewCommentsMetric(weights[IDComments]),
		},
	}
}

// Metrics returns the metrics in evaluation order.
func (r *Registry) Metrics() []Metric {
	return r.metrics
}
