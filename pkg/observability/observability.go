package observability

import "context"

type Observability interface {
	Close(ctx context.Context) error
	Logger() Logger
	Meter() Meter
	Tracer() Tracer
}
