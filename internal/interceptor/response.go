package interceptor

import (
	"io"
	"net/http"

	"github.com/felixge/httpsnoop"
)

type responseState struct {
	status  int
	written bool
}

func (s *responseState) record(code int) {
	if !s.written {
		s.status = code
		s.written = true
	}
}

// captureResponse wraps w so the first final status sent to the client is
// recorded. The wrapper keeps the optional interfaces w implements.
func captureResponse(w http.ResponseWriter) (http.ResponseWriter, *responseState) {
	state := &responseState{}

	wrapped := httpsnoop.Wrap(w, httpsnoop.Hooks{
		WriteHeader: func(next httpsnoop.WriteHeaderFunc) httpsnoop.WriteHeaderFunc {
			return func(code int) {
				// 1xx responses are followed by the real one.
				if code >= http.StatusOK {
					state.record(code)
				}
				next(code)
			}
		},
		Write: func(next httpsnoop.WriteFunc) httpsnoop.WriteFunc {
			return func(b []byte) (int, error) {
				state.record(http.StatusOK)
				return next(b)
			}
		},
		ReadFrom: func(next httpsnoop.ReadFromFunc) httpsnoop.ReadFromFunc {
			return func(src io.Reader) (int64, error) {
				state.record(http.StatusOK)
				return next(src)
			}
		},
	})

	return wrapped, state
}
