package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/neomorfeo/tourify/internal/domain"
)

const instrumentationName = "github.com/neomorfeo/tourify/internal/adapter/otel"

// TracingStore wraps a domain.Store with OpenTelemetry tracing and an
// operation counter labelled by operation and outcome.
type TracingStore struct {
	next   domain.Store
	tracer trace.Tracer
	ops    metric.Int64Counter
}

// Compile-time check: TracingStore implements domain.Store.
var _ domain.Store = (*TracingStore)(nil)

// NewTracingStore creates a tracing decorator around the given store.
func NewTracingStore(next domain.Store) (*TracingStore, error) {
	ops, err := otel.Meter(instrumentationName).Int64Counter("store.operations",
		metric.WithDescription("Persistence gateway operations by outcome"),
	)
	if err != nil {
		return nil, err
	}
	return &TracingStore{
		next:   next,
		tracer: otel.Tracer(instrumentationName),
		ops:    ops,
	}, nil
}

func (s *TracingStore) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, span := s.tracer.Start(ctx, "Store.Get",
		trace.WithAttributes(attribute.String("store.key", key)),
	)
	defer span.End()

	value, err := s.next.Get(ctx, key)
	if err == nil {
		span.SetAttributes(
			attribute.Bool("store.hit", value != nil),
			attribute.Int("store.bytes", len(value)),
		)
	}
	s.finish(ctx, span, "get", err)
	return value, err
}

func (s *TracingStore) Set(ctx context.Context, key string, value []byte) error {
	ctx, span := s.tracer.Start(ctx, "Store.Set",
		trace.WithAttributes(
			attribute.String("store.key", key),
			attribute.Int("store.bytes", len(value)),
		),
	)
	defer span.End()

	err := s.next.Set(ctx, key, value)
	s.finish(ctx, span, "set", err)
	return err
}

func (s *TracingStore) Delete(ctx context.Context, key string) error {
	ctx, span := s.tracer.Start(ctx, "Store.Delete",
		trace.WithAttributes(attribute.String("store.key", key)),
	)
	defer span.End()

	err := s.next.Delete(ctx, key)
	s.finish(ctx, span, "delete", err)
	return err
}

func (s *TracingStore) finish(ctx context.Context, span trace.Span, op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.ops.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("outcome", outcome),
	))
}
