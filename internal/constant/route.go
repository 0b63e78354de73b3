package constant

const (
	EndpointHello   = "/api/hello"
	EndpointMetrics = "/metrics"
	EndpointAlert   = "/alert"

	HeaderRequestID = "X-Request-ID"
)
