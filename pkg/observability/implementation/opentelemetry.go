package implementation

import (
	"context"
	"fmt"
	"time"

	"github.com/jt828/hello-metrics/pkg/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

type otelTracer struct {
	tracer trace.Tracer
}

type otelSpan struct {
	span trace.Span
}

func (s otelSpan) End() { s.span.End() }

func (s otelSpan) RecordError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

func (s otelSpan) SetAttributes(fields ...observability.Field) {
	s.span.SetAttributes(toAttributes(fields)...)
}

func (t otelTracer) Start(
	ctx context.Context,
	name string,
) (context.Context, observability.Span) {
	ctx, span := t.tracer.Start(ctx, name)
	return ctx, otelSpan{span}
}

// NewOtelTracerFromProvider wraps an already configured provider.
func NewOtelTracerFromProvider(tp trace.TracerProvider, serviceName string) observability.Tracer {
	return otelTracer{tracer: tp.Tracer(serviceName)}
}

// NewOtelTracer installs a global tracer provider for serviceName. Spans are
// exported over OTLP/gRPC only when endpoint is set; otherwise they are still
// created so trace context propagates, but nothing leaves the process.
func NewOtelTracer(
	ctx context.Context,
	serviceName string,
	endpoint string,
) (observability.Tracer, func(ctx context.Context) error, error) {
	res, err := resource.New(
		ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			attribute.String("service.version", "0.0.1"),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}

	if endpoint != "" {
		exp, err := otlptracegrpc.New(
			ctx,
			otlptracegrpc.WithEndpoint(endpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("create otlp exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exp))
	}

	tp := sdktrace.NewTracerProvider(opts...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return otelTracer{tracer: tp.Tracer(serviceName)},
		func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return tp.Shutdown(ctx)
		},
		nil
}

func toAttributes(fields []observability.Field) []attribute.KeyValue {
	out := make([]attribute.KeyValue, 0, len(fields))
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			out = append(out, attribute.String(f.Key, v))
		case int:
			out = append(out, attribute.Int(f.Key, v))
		case int64:
			out = append(out, attribute.Int64(f.Key, v))
		case float64:
			out = append(out, attribute.Float64(f.Key, v))
		case bool:
			out = append(out, attribute.Bool(f.Key, v))
		case error:
			out = append(out, attribute.String(f.Key, v.Error()))
		default:
			out = append(out, attribute.String(f.Key, fmt.Sprint(v)))
		}
	}
	return out
}
