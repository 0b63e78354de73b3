package observability

// Meter registers metrics and serializes their current state.
// Implementations must be safe for concurrent use.
type Meter interface {
	Counter(name string, opts ...MetricOpt) (Counter, error)
	Histogram(name string, opts ...MetricOpt) (Histogram, error)
	// Export returns the text exposition of every registered metric.
	// It never fails; the output is deterministic for a given state.
	// A labelled metric that has no samples yet is left out entirely,
	// HELP and TYPE lines included, until its first label set is recorded.
	Export() []byte
}

type Counter interface {
	Inc(v float64, labels ...Label) error
}

type Histogram interface {
	Observe(v float64, labels ...Label) error
}
