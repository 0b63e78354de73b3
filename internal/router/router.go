package router

import (
	"net/http"

	"github.com/jt828/hello-metrics/internal/constant"
	"github.com/jt828/hello-metrics/internal/controller"
	"github.com/jt828/hello-metrics/internal/interceptor"
	"github.com/jt828/hello-metrics/pkg/observability"
	"github.com/jt828/hello-metrics/pkg/snowflake"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Controllers struct {
	Hello   *controller.HelloController
	Metrics *controller.MetricsController
	Alert   *controller.AlertController
}

type Dependencies struct {
	Log            observability.Logger
	Tracer         observability.Tracer
	RequestMetrics interceptor.RequestMetrics
	RequestIDs     snowflake.Snowflake
}

// New registers the three application routes. /metrics is left out of the
// request metrics and handler spans so that scraping does not change what the
// next scrape returns.
func New(deps Dependencies, ctrls Controllers) http.Handler {
	handle := interceptor.ErrorInterceptor(deps.Log)

	instrumented := func(endpoint string, h interceptor.Handler) http.Handler {
		return handle(interceptor.Chain(h,
			interceptor.MetricsInterceptor(deps.RequestMetrics, deps.Log, endpoint),
			interceptor.TracingInterceptor(deps.Tracer, endpoint),
		))
	}

	mux := http.NewServeMux()
	mux.Handle("GET "+constant.EndpointHello, instrumented(constant.EndpointHello, ctrls.Hello.Hello))
	mux.Handle("POST "+constant.EndpointAlert, instrumented(constant.EndpointAlert, ctrls.Alert.Receive))
	mux.Handle("GET "+constant.EndpointMetrics, handle(ctrls.Metrics.Export))

	return otelhttp.NewHandler(
		interceptor.RequestIDInterceptor(deps.RequestIDs)(mux),
		"http.server",
		otelhttp.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != constant.EndpointMetrics
		}),
	)
}
