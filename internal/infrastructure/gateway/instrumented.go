package gateway

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/soumyadeepdutta/tamperproof-users/internal/observability"
)

// Instrumented wraps a Store with a span, a latency observation and an outcome
// counter per statement.
type Instrumented struct {
	next    Store
	metrics *observability.Metrics
	tracer  trace.Tracer
}

func Instrument(next Store, metrics *observability.Metrics) *Instrumented {
	return &Instrumented{next: next, metrics: metrics, tracer: observability.Tracer()}
}

func (s *Instrumented) Execute(ctx context.Context, stmt Statement) (ExecResult, error) {
	ctx, span := s.start(ctx, "store.execute", stmt)
	defer span.End()

	start := time.Now()
	res, err := s.next.Execute(ctx, stmt)
	s.observe("execute", start, err, span)
	if err == nil {
		span.SetAttributes(
			attribute.Int64("db.rows_affected", res.AffectedRows),
			attribute.String("db.transaction_id", res.Proof.TransactionID),
		)
	}
	return res, err
}

func (s *Instrumented) Query(ctx context.Context, stmt Statement) (QueryResult, error) {
	ctx, span := s.start(ctx, "store.query", stmt)
	defer span.End()

	start := time.Now()
	res, err := s.next.Query(ctx, stmt)
	s.observe("query", start, err, span)
	if err == nil {
		span.SetAttributes(attribute.Int("db.rows_returned", len(res.Rows)))
	}
	return res, err
}

func (s *Instrumented) start(ctx context.Context, name string, stmt Statement) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("db.operation", verb(stmt.Text)),
		attribute.Int("db.statement.length", len(stmt.Text)),
	))
}

func (s *Instrumented) observe(kind string, start time.Time, err error, span trace.Span) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.metrics == nil {
		return
	}
	s.metrics.StatementLatency.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	s.metrics.Statements.WithLabelValues(kind, outcome).Inc()
}

// verb returns the leading SQL keyword; bulk statement text is never attached to spans.
func verb(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[0])
}
