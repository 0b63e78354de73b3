package implementation

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/jt828/hello-metrics/pkg/apperror"
	"github.com/jt828/hello-metrics/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

type prometheusMeter struct {
	mu       sync.Mutex
	registry *prometheus.Registry
	names    map[string]struct{}
}

func NewPrometheusMeter() observability.Meter {
	return &prometheusMeter{
		registry: prometheus.NewRegistry(),
		names:    make(map[string]struct{}),
	}
}

func (m *prometheusMeter) Registry() *prometheus.Registry {
	return m.registry
}

func PromRegistry(m observability.Meter) *prometheus.Registry {
	if pm, ok := m.(*prometheusMeter); ok {
		return pm.Registry()
	}
	return nil
}

func (m *prometheusMeter) register(name string, c prometheus.Collector) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.names[name]; exists {
		return fmt.Errorf("metric %s: %w", name, apperror.ErrDuplicateMetric)
	}

	if err := m.registry.Register(c); err != nil {
		var alreadyRegErr prometheus.AlreadyRegisteredError
		if errors.As(err, &alreadyRegErr) {
			return fmt.Errorf("metric %s: %w", name, apperror.ErrDuplicateMetric)
		}
		return fmt.Errorf("register metric %s: %w", name, err)
	}

	m.names[name] = struct{}{}
	return nil
}

// Export gathers every registered family and encodes it in the text
// exposition format. Families come back sorted by name and samples by label
// values, so identical state always yields identical bytes.
func (m *prometheusMeter) Export() []byte {
	// Gather still returns whatever it collected when some collector fails.
	mfs, _ := m.registry.Gather()

	var out, family bytes.Buffer
	for _, mf := range mfs {
		family.Reset()
		if _, err := expfmt.MetricFamilyToText(&family, mf); err != nil {
			continue
		}
		out.Write(family.Bytes())
	}
	return out.Bytes()
}

// -------------------- Counter --------------------

type promCounter struct {
	name      string
	vec       *prometheus.CounterVec
	labelKeys []string
}

func (m *prometheusMeter) Counter(name string, opts ...observability.MetricOpt) (observability.Counter, error) {
	opt := firstOpt(opts)

	vec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        name,
			Help:        opt.Help,
			ConstLabels: toPromLabelsMap(opt.ConstLabels),
		},
		opt.LabelKeys,
	)

	if err := m.register(name, vec); err != nil {
		return nil, err
	}
	return &promCounter{name: name, vec: vec, labelKeys: opt.LabelKeys}, nil
}

func (c *promCounter) Inc(v float64, labels ...observability.Label) error {
	if v < 0 {
		return fmt.Errorf("counter %s cannot decrease by %v: %w", c.name, v, apperror.ErrInvalidArgument)
	}

	promLabels, err := resolveLabels(c.name, c.labelKeys, labels)
	if err != nil {
		return err
	}

	counter, err := c.vec.GetMetricWith(promLabels)
	if err != nil {
		return fmt.Errorf("counter %s: %v: %w", c.name, err, apperror.ErrInvalidArgument)
	}
	counter.Add(v)
	return nil
}

// -------------------- Histogram --------------------

type promHistogram struct {
	name      string
	vec       *prometheus.HistogramVec
	labelKeys []string
}

func (m *prometheusMeter) Histogram(name string, opts ...observability.MetricOpt) (observability.Histogram, error) {
	opt := firstOpt(opts)

	buckets := opt.Buckets
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}
	if !validBuckets(buckets) {
		return nil, fmt.Errorf("histogram %s buckets must be strictly increasing: %w", name, apperror.ErrInvalidArgument)
	}

	vec := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:        name,
			Help:        opt.Help,
			Buckets:     buckets,
			ConstLabels: toPromLabelsMap(opt.ConstLabels),
		},
		opt.LabelKeys,
	)

	if err := m.register(name, vec); err != nil {
		return nil, err
	}
	return &promHistogram{name: name, vec: vec, labelKeys: opt.LabelKeys}, nil
}

func (h *promHistogram) Observe(v float64, labels ...observability.Label) error {
	promLabels, err := resolveLabels(h.name, h.labelKeys, labels)
	if err != nil {
		return err
	}

	histogram, err := h.vec.GetMetricWith(promLabels)
	if err != nil {
		return fmt.Errorf("histogram %s: %v: %w", h.name, err, apperror.ErrInvalidArgument)
	}
	histogram.Observe(v)
	return nil
}

// -------------------- Helpers --------------------

func firstOpt(opts []observability.MetricOpt) observability.MetricOpt {
	if len(opts) == 0 {
		return observability.MetricOpt{}
	}
	return opts[0]
}

func resolveLabels(name string, keys []string, labels []observability.Label) (prometheus.Labels, error) {
	if len(labels) != len(keys) {
		return nil, fmt.Errorf("metric %s wants %d label values, got %d: %w",
			name, len(keys), len(labels), apperror.ErrLabelArity)
	}

	m := toPromLabelsMap(labels)
	if len(m) != len(keys) {
		return nil, fmt.Errorf("metric %s got a repeated label name: %w", name, apperror.ErrLabelArity)
	}
	for _, k := range keys {
		if _, ok := m[k]; !ok {
			return nil, fmt.Errorf("metric %s has no value for label %s: %w", name, k, apperror.ErrUnknownLabel)
		}
	}
	return m, nil
}

func validBuckets(buckets []float64) bool {
	for i := 1; i < len(buckets); i++ {
		if buckets[i] <= buckets[i-1] {
			return false
		}
	}
	return true
}

func toPromLabelsMap(labels []observability.Label) prometheus.Labels {
	if len(labels) == 0 {
		return nil
	}
	m := make(prometheus.Labels, len(labels))
	for _, l := range labels {
		m[l.Key] = l.Value
	}
	return m
}
