package implementation

import (
	"context"
	"fmt"

	"github.com/jt828/hello-metrics/pkg/observability"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type Config struct {
	ServiceName  string
	LogLevel     string
	OTLPEndpoint string
	// RuntimeCollectors adds Go runtime and process metrics to the meter.
	// Those change between scrapes even without traffic.
	RuntimeCollectors bool
}

func NewObservability(ctx context.Context, cfg Config) (observability.Observability, error) {
	log, err := NewZapLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	meter := NewPrometheusMeter()
	if cfg.RuntimeCollectors {
		reg := PromRegistry(meter)
		if err := reg.Register(collectors.NewGoCollector()); err != nil {
			return nil, fmt.Errorf("register go collector: %w", err)
		}
		if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
			return nil, fmt.Errorf("register process collector: %w", err)
		}
	}

	tracer, shutdown, err := NewOtelTracer(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		return nil, err
	}

	return &observabilityImplementation{
		log:        log,
		meter:      meter,
		tracer:     tracer,
		traceClose: shutdown,
	}, nil
}
