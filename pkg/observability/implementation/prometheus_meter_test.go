package implementation_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/jt828/hello-metrics/pkg/apperror"
	"github.com/jt828/hello-metrics/pkg/observability"
	"github.com/jt828/hello-metrics/pkg/observability/implementation"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestCounter(t *testing.T, meter observability.Meter) observability.Counter {
	t.Helper()
	c, err := meter.Counter("app_requests_total", observability.MetricOpt{
		Help:      "Total HTTP requests",
		LabelKeys: []string{"method", "endpoint", "http_status"},
	})
	require.NoError(t, err)
	return c
}

func requestLabels(status string) []observability.Label {
	return []observability.Label{
		{Key: "method", Value: "GET"},
		{Key: "endpoint", Value: "/api/hello"},
		{Key: "http_status", Value: status},
	}
}

func TestPrometheusMeter_Counter(t *testing.T) {
	t.Run("increment is exported with help and type", func(t *testing.T) {
		meter := implementation.NewPrometheusMeter()
		c := requestCounter(t, meter)

		require.NoError(t, c.Inc(1, requestLabels("200")...))
		require.NoError(t, c.Inc(1, requestLabels("200")...))
		require.NoError(t, c.Inc(1, requestLabels("500")...))

		expected := `# HELP app_requests_total Total HTTP requests
# TYPE app_requests_total counter
app_requests_total{endpoint="/api/hello",http_status="200",method="GET"} 2
app_requests_total{endpoint="/api/hello",http_status="500",method="GET"} 1
`
		assert.Equal(t, expected, string(meter.Export()))
	})

	t.Run("duplicate name is rejected", func(t *testing.T) {
		meter := implementation.NewPrometheusMeter()
		requestCounter(t, meter)

		_, err := meter.Counter("app_requests_total", observability.MetricOpt{Help: "again"})
		assert.ErrorIs(t, err, apperror.ErrDuplicateMetric)

		_, err = meter.Histogram("app_requests_total", observability.MetricOpt{Help: "again"})
		assert.ErrorIs(t, err, apperror.ErrDuplicateMetric)
	})

	t.Run("label arity mismatch is rejected", func(t *testing.T) {
		meter := implementation.NewPrometheusMeter()
		c := requestCounter(t, meter)

		err := c.Inc(1, observability.Label{Key: "method", Value: "GET"})
		assert.ErrorIs(t, err, apperror.ErrLabelArity)

		err = c.Inc(1)
		assert.ErrorIs(t, err, apperror.ErrLabelArity)
	})

	t.Run("repeated label name is an arity error", func(t *testing.T) {
		meter := implementation.NewPrometheusMeter()
		c := requestCounter(t, meter)

		err := c.Inc(1,
			observability.Label{Key: "method", Value: "GET"},
			observability.Label{Key: "method", Value: "POST"},
			observability.Label{Key: "endpoint", Value: "/"},
		)
		assert.ErrorIs(t, err, apperror.ErrLabelArity)
	})

	t.Run("undeclared label name is rejected", func(t *testing.T) {
		meter := implementation.NewPrometheusMeter()
		c := requestCounter(t, meter)

		err := c.Inc(1,
			observability.Label{Key: "method", Value: "GET"},
			observability.Label{Key: "endpoint", Value: "/"},
			observability.Label{Key: "status", Value: "200"},
		)
		assert.ErrorIs(t, err, apperror.ErrUnknownLabel)
	})

	t.Run("label value that is not valid UTF-8 is an invalid argument", func(t *testing.T) {
		meter := implementation.NewPrometheusMeter()
		c := requestCounter(t, meter)

		err := c.Inc(1,
			observability.Label{Key: "method", Value: "GET"},
			observability.Label{Key: "endpoint", Value: "\xff"},
			observability.Label{Key: "http_status", Value: "200"},
		)
		assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
		assert.NotErrorIs(t, err, apperror.ErrUnknownLabel)
	})

	t.Run("negative increment is rejected", func(t *testing.T) {
		meter := implementation.NewPrometheusMeter()
		c := requestCounter(t, meter)

		err := c.Inc(-1, requestLabels("200")...)
		assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
	})

	t.Run("concurrent increments are not lost", func(t *testing.T) {
		meter := implementation.NewPrometheusMeter()
		c := requestCounter(t, meter)

		const n = 200
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, c.Inc(1, requestLabels("200")...))
			}()
		}
		wg.Wait()

		expected := `# HELP app_requests_total Total HTTP requests
# TYPE app_requests_total counter
app_requests_total{endpoint="/api/hello",http_status="200",method="GET"} 200
`
		err := testutil.GatherAndCompare(implementation.PromRegistry(meter), strings.NewReader(expected), "app_requests_total")
		assert.NoError(t, err)
	})
}

func TestPrometheusMeter_Histogram(t *testing.T) {
	t.Run("observation fills cumulative buckets", func(t *testing.T) {
		meter := implementation.NewPrometheusMeter()
		h, err := meter.Histogram("app_request_duration_seconds", observability.MetricOpt{
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.01, 0.1, 1},
			LabelKeys: []string{"endpoint"},
		})
		require.NoError(t, err)

		require.NoError(t, h.Observe(0.05, observability.Label{Key: "endpoint", Value: "/api/hello"}))

		expected := `# HELP app_request_duration_seconds HTTP request duration in seconds
# TYPE app_request_duration_seconds histogram
app_request_duration_seconds_bucket{endpoint="/api/hello",le="0.01"} 0
app_request_duration_seconds_bucket{endpoint="/api/hello",le="0.1"} 1
app_request_duration_seconds_bucket{endpoint="/api/hello",le="1"} 1
app_request_duration_seconds_bucket{endpoint="/api/hello",le="+Inf"} 1
app_request_duration_seconds_sum{endpoint="/api/hello"} 0.05
app_request_duration_seconds_count{endpoint="/api/hello"} 1
`
		assert.Equal(t, expected, string(meter.Export()))
	})

	t.Run("label arity mismatch is rejected", func(t *testing.T) {
		meter := implementation.NewPrometheusMeter()
		h, err := meter.Histogram("latency_seconds", observability.MetricOpt{
			Help:      "latency",
			LabelKeys: []string{"endpoint"},
		})
		require.NoError(t, err)

		assert.ErrorIs(t, h.Observe(0.1), apperror.ErrLabelArity)
	})

	t.Run("unsorted buckets are rejected", func(t *testing.T) {
		meter := implementation.NewPrometheusMeter()
		_, err := meter.Histogram("latency_seconds", observability.MetricOpt{
			Help:    "latency",
			Buckets: []float64{1, 0.5},
		})
		assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
	})
}

func TestPrometheusMeter_Export(t *testing.T) {
	t.Run("empty meter exports nothing", func(t *testing.T) {
		meter := implementation.NewPrometheusMeter()
		assert.Empty(t, meter.Export())
	})

	t.Run("repeated exports are identical", func(t *testing.T) {
		meter := implementation.NewPrometheusMeter()
		c := requestCounter(t, meter)
		require.NoError(t, c.Inc(1, requestLabels("200")...))

		first := meter.Export()
		second := meter.Export()
		assert.Equal(t, first, second)
	})

	t.Run("families are ordered by name with one help and type each", func(t *testing.T) {
		meter := implementation.NewPrometheusMeter()
		z, err := meter.Counter("zeta_total", observability.MetricOpt{Help: "z"})
		require.NoError(t, err)
		a, err := meter.Counter("alpha_total", observability.MetricOpt{Help: "a"})
		require.NoError(t, err)
		require.NoError(t, z.Inc(1))
		require.NoError(t, a.Inc(1))

		out := string(meter.Export())
		assert.Less(t, strings.Index(out, "alpha_total"), strings.Index(out, "zeta_total"))
		assert.Equal(t, 1, strings.Count(out, "# HELP alpha_total "))
		assert.Equal(t, 1, strings.Count(out, "# TYPE alpha_total counter"))
		assert.Equal(t, 1, strings.Count(out, "# HELP zeta_total "))
		assert.Equal(t, 1, strings.Count(out, "# TYPE zeta_total counter"))
	})
}

func TestPromRegistry(t *testing.T) {
	assert.NotNil(t, implementation.PromRegistry(implementation.NewPrometheusMeter()))
}
