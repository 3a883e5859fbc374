package dataset

import (
	"context"

	domain "github.com/soumyadeepdutta/tamperproof-users/internal/domain/dataset"
	"github.com/soumyadeepdutta/tamperproof-users/internal/observability"
)

type VerifyInput struct {
	SampleSize int
}

// Verify reads back a count and a small sample after an import. Failures are
// reported and logged, never returned.
type Verify interface {
	Execute(ctx context.Context, in VerifyInput) domain.VerifyReport
}

type verify struct {
	counter domain.RecordCounter
}

func NewVerify(counter domain.RecordCounter) Verify {
	return &verify{counter: counter}
}

func (uc *verify) Execute(ctx context.Context, in VerifyInput) domain.VerifyReport {
	var report domain.VerifyReport

	count, err := uc.counter.CountRecords(ctx)
	if err != nil {
		observability.Logf(ctx, "verify: count failed: %v", err)
		report.CountError = err.Error()
	} else {
		report.Count = count
		observability.Logf(ctx, "verify: %d records in store", count)
	}

	if in.SampleSize <= 0 {
		return report
	}

	sample, err := uc.counter.SampleRecords(ctx, in.SampleSize)
	if err != nil {
		observability.Logf(ctx, "verify: sample failed: %v", err)
		report.SampleErr = err.Error()
		return report
	}

	report.Sample = sample
	report.SampleSize = len(sample)
	for _, rec := range sample {
		observability.Logf(ctx, "verify: sample application_id=%s", rec.ApplicationID())
	}
	return report
}
