package bootstrap

import (
	"github.com/jt828/hello-metrics/internal/constant"
	"github.com/jt828/hello-metrics/pkg/observability"
)

type Metrics struct {
	RequestsTotal      observability.Counter
	RequestDuration    observability.Histogram
	NotificationsTotal observability.Counter
}

// InitializeMetrics registers the application metrics on meter. A failure
// here is a programming error and should stop startup.
func InitializeMetrics(meter observability.Meter) (*Metrics, error) {
	requestsTotal, err := meter.Counter(constant.MetricRequestsTotal, observability.MetricOpt{
		Help:      "Total HTTP requests",
		LabelKeys: []string{constant.LabelMethod, constant.LabelEndpoint, constant.LabelHTTPStatus},
	})
	if err != nil {
		return nil, err
	}

	requestDuration, err := meter.Histogram(constant.MetricRequestDuration, observability.MetricOpt{
		Help:      "HTTP request duration in seconds",
		Buckets:   constant.RequestDurationBuckets,
		LabelKeys: []string{constant.LabelEndpoint},
	})
	if err != nil {
		return nil, err
	}

	notificationsTotal, err := meter.Counter(constant.MetricNotificationsTotal, observability.MetricOpt{
		Help:      "Total Alertmanager webhook notifications received",
		LabelKeys: []string{constant.LabelReceiver},
	})
	if err != nil {
		return nil, err
	}

	return &Metrics{
		RequestsTotal:      requestsTotal,
		RequestDuration:    requestDuration,
		NotificationsTotal: notificationsTotal,
	}, nil
}
