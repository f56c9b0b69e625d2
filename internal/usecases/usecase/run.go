// Package usecase holds the plumbing shared by every use case: one span and
// one unit of work per Execute call.
package usecase

import (
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/yungbote/knowledge-backend/internal/data/txrunner"
	"github.com/yungbote/knowledge-backend/internal/domain/faults"
	"github.com/yungbote/knowledge-backend/internal/observability"
	"github.com/yungbote/knowledge-backend/internal/platform/dbctx"
)

// Runner carries what every use case needs to execute: the transaction
// runner, the metrics registry and the use-case tracer.
type Runner struct {
	tx      txrunner.TxRunner
	metrics *observability.Metrics
	tracer  trace.Tracer
}

// NewRunner builds a Runner. metrics and tracing may be nil.
func NewRunner(tx txrunner.TxRunner, metrics *observability.Metrics, tracing *observability.Tracing) Runner {
	return Runner{
		tx:      tx,
		metrics: metrics,
		tracer:  tracing.UseCaseTracer(),
	}
}

func (r Runner) spanTracer() trace.Tracer {
	if r.tracer == nil {
		return noop.NewTracerProvider().Tracer("")
	}
	return r.tracer
}

// Run executes fn inside a span named name and inside the caller's
// transaction when dbc carries one, or a fresh transaction from r.
func Run[T any](dbc dbctx.Context, r Runner, name string, fn func(dbc dbctx.Context) (T, error), attrs ...attribute.KeyValue) (T, error) {
	start := time.Now()
	ctx, span := r.spanTracer().Start(dbc.Context(), name, trace.WithAttributes(attrs...))
	defer span.End()

	var out T
	err := txrunner.Scoped(dbc.WithContext(ctx), r.tx, func(scoped dbctx.Context) error {
		var err error
		out, err = fn(scoped)
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.metrics.ObserveUseCase(name, string(faults.CodeOf(err)), time.Since(start))
		var zero T
		return zero, err
	}
	r.metrics.ObserveUseCase(name, "ok", time.Since(start))
	return out, nil
}

// Event records a named event on the span carried by dbc, if any.
func Event(dbc dbctx.Context, name string, attrs ...attribute.KeyValue) {
	trace.SpanFromContext(dbc.Context()).AddEvent(name, trace.WithAttributes(attrs...))
}
