package gateway_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/soumyadeepdutta/tamperproof-users/internal/domain/proof"
	"github.com/soumyadeepdutta/tamperproof-users/internal/infrastructure/gateway"
	"github.com/soumyadeepdutta/tamperproof-users/internal/observability"
)

type fakeStore struct {
	execErr  error
	queryErr error
}

func (f *fakeStore) Execute(ctx context.Context, stmt gateway.Statement) (gateway.ExecResult, error) {
	if f.execErr != nil {
		return gateway.ExecResult{}, f.execErr
	}
	return gateway.ExecResult{AffectedRows: 1, Proof: proof.Proof{Verified: true, TransactionID: "900"}}, nil
}

func (f *fakeStore) Query(ctx context.Context, stmt gateway.Statement) (gateway.QueryResult, error) {
	if f.queryErr != nil {
		return gateway.QueryResult{}, f.queryErr
	}
	return gateway.QueryResult{Rows: []gateway.Row{{int32(1)}}}, nil
}

func TestInstrumentedCountsOutcomes(t *testing.T) {
	t.Parallel()

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	ok := gateway.Instrument(&fakeStore{}, metrics)
	failing := gateway.Instrument(&fakeStore{execErr: gateway.ErrStatementFailed, queryErr: gateway.ErrStatementFailed}, metrics)

	ctx := context.Background()
	if _, err := ok.Execute(ctx, gateway.SQL("INSERT INTO t VALUES (1)")); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := ok.Query(ctx, gateway.SQL("SELECT 1")); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := failing.Execute(ctx, gateway.SQL("INSERT INTO t VALUES (1)")); !errors.Is(err, gateway.ErrStatementFailed) {
		t.Fatalf("expected passthrough error, got %v", err)
	}

	if got := testutil.ToFloat64(metrics.Statements.WithLabelValues("execute", "ok")); got != 1 {
		t.Fatalf("expected 1 ok execute, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.Statements.WithLabelValues("execute", "error")); got != 1 {
		t.Fatalf("expected 1 failed execute, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.Statements.WithLabelValues("query", "ok")); got != 1 {
		t.Fatalf("expected 1 ok query, got %v", got)
	}
}

func TestInstrumentedWithoutMetrics(t *testing.T) {
	t.Parallel()

	s := gateway.Instrument(&fakeStore{}, nil)
	res, err := s.Execute(context.Background(), gateway.SQL("UPDATE t SET x = 1"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Proof.TransactionID != "900" {
		t.Fatalf("proof not forwarded: %+v", res.Proof)
	}
}
