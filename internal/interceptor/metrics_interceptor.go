package interceptor

import (
	"net/http"
	"strconv"
	"time"

	"github.com/jt828/hello-metrics/internal/constant"
	"github.com/jt828/hello-metrics/pkg/apperror"
	"github.com/jt828/hello-metrics/pkg/observability"
)

type RequestMetrics struct {
	Requests observability.Counter
	Duration observability.Histogram
}

// MetricsInterceptor records the duration and outcome of every call to the
// wrapped handler under a fixed endpoint label. Recording happens in a
// deferred call, so it also runs when the handler fails or panics; a panic is
// re-raised once the metrics are written.
func MetricsInterceptor(m RequestMetrics, log observability.Logger, endpoint string) Interceptor {
	return func(next Handler) Handler {
		return func(w http.ResponseWriter, r *http.Request) (err error) {
			start := time.Now()
			cw, state := captureResponse(w)

			defer func() {
				rec := recover()
				status := resolveStatus(err, rec != nil, state)
				elapsed := time.Since(start).Seconds()

				if oerr := m.Duration.Observe(elapsed,
					observability.Label{Key: constant.LabelEndpoint, Value: endpoint},
				); oerr != nil {
					log.Warn("failed to observe request duration", observability.Err(oerr))
				}

				if ierr := m.Requests.Inc(1,
					observability.Label{Key: constant.LabelMethod, Value: r.Method},
					observability.Label{Key: constant.LabelEndpoint, Value: endpoint},
					observability.Label{Key: constant.LabelHTTPStatus, Value: strconv.Itoa(status)},
				); ierr != nil {
					log.Warn("failed to count request", observability.Err(ierr))
				}

				if rec != nil {
					panic(rec)
				}
			}()

			return next(cw, r)
		}
	}
}

func resolveStatus(err error, panicked bool, state *responseState) int {
	// Once a status is on the wire the error interceptor can no longer change it.
	switch {
	case state.written:
		return state.status
	case panicked:
		return http.StatusInternalServerError
	case err != nil:
		return apperror.HTTPStatus(err)
	default:
		return http.StatusOK
	}
}
