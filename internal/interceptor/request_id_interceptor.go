package interceptor

import (
	"context"
	"net/http"

	"github.com/jt828/hello-metrics/internal/constant"
	"github.com/jt828/hello-metrics/pkg/snowflake"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// RequestIDInterceptor echoes the caller's X-Request-ID or assigns a new
// snowflake ID, and makes it available through RequestIDFromContext.
func RequestIDInterceptor(idGen snowflake.Snowflake) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(constant.HeaderRequestID)
			if id == "" {
				id = idGen.GenerateString()
			}

			w.Header().Set(constant.HeaderRequestID, id)
			next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), id)))
		})
	}
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
