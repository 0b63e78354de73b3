package constant

const (
	MetricRequestsTotal      = "app_requests_total"
	MetricRequestDuration    = "app_request_duration_seconds"
	MetricNotificationsTotal = "alertmanager_notifications_total"

	LabelMethod     = "method"
	LabelEndpoint   = "endpoint"
	LabelHTTPStatus = "http_status"
	LabelReceiver   = "receiver"
)

// RequestDurationBuckets matches the default buckets of the client library
// the existing dashboards were built against.
var RequestDurationBuckets = []float64{
	0.005, 0.01, 0.025, 0.05, 0.075, 0.1, 0.25, 0.5, 0.75, 1, 2.5, 5, 7.5, 10,
}
