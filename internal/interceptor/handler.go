package interceptor

import "net/http"

// Handler is an HTTP handler that reports failure by returning an error
// instead of writing the error response itself.
type Handler func(w http.ResponseWriter, r *http.Request) error

type Interceptor func(next Handler) Handler

// Chain applies interceptors so that the first one listed runs outermost.
func Chain(h Handler, interceptors ...Interceptor) Handler {
	for i := len(interceptors) - 1; i >= 0; i-- {
		h = interceptors[i](h)
	}
	return h
}
