package interceptor

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jt828/hello-metrics/pkg/apperror"
	"github.com/jt828/hello-metrics/pkg/observability"
)

const internalErrorMessage = "internal server error"

type errorResponse struct {
	Error string `json:"error"`
}

// ErrorInterceptor adapts a Handler to net/http. Returned errors are mapped
// to a status through apperror; panics are recovered and answered with 500.
func ErrorInterceptor(log observability.Logger) func(Handler) http.Handler {
	return func(next Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cw, state := captureResponse(w)
			reqLog := log.With(
				observability.String("path", r.URL.Path),
				observability.String("request_id", RequestIDFromContext(r.Context())),
			)

			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					reqLog.Error("panic recovered", observability.String("panic", fmt.Sprintf("%v", rec)))
					if !state.written {
						writeError(cw, http.StatusInternalServerError, internalErrorMessage)
					}
				}
			}()

			err := next(cw, r)
			if err == nil {
				return
			}

			code := apperror.HTTPStatus(err)
			message := err.Error()
			if code == http.StatusInternalServerError {
				reqLog.Error("unhandled error", observability.Err(err))
				message = internalErrorMessage
			}

			if state.written {
				return
			}
			writeError(cw, code, message)
		})
	}
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message})
}
