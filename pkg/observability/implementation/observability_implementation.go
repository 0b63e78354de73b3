package implementation

import (
	"context"

	"github.com/jt828/hello-metrics/pkg/observability"
)

type observabilityImplementation struct {
	log    observability.Logger
	meter  observability.Meter
	tracer observability.Tracer

	traceClose func(context.Context) error
}

func (o *observabilityImplementation) Close(ctx context.Context) error {
	var err error
	if o.traceClose != nil {
		err = o.traceClose(ctx)
	}
	if s, ok := o.log.(interface{ Sync() error }); ok {
		// stdout/stderr report EINVAL on sync on most platforms.
		_ = s.Sync()
	}
	return err
}
func (o *observabilityImplementation) Logger() observability.Logger { return o.log }
func (o *observabilityImplementation) Meter() observability.Meter   { return o.meter }
func (o *observabilityImplementation) Tracer() observability.Tracer { return o.tracer }
