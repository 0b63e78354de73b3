package interceptor

import (
	"net/http"

	"github.com/jt828/hello-metrics/pkg/observability"
)

func TracingInterceptor(tracer observability.Tracer, endpoint string) Interceptor {
	return func(next Handler) Handler {
		return func(w http.ResponseWriter, r *http.Request) error {
			ctx, span := tracer.Start(r.Context(), endpoint)
			defer span.End()

			span.SetAttributes(
				observability.String("http.route", endpoint),
				observability.String("http.method", r.Method),
			)
			if id := RequestIDFromContext(ctx); id != "" {
				span.SetAttributes(observability.String("request.id", id))
			}

			err := next(w, r.WithContext(ctx))
			if err != nil {
				span.RecordError(err)
			}
			return err
		}
	}
}
