package dataset

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	domain "github.com/soumyadeepdutta/tamperproof-users/internal/domain/dataset"
	"github.com/soumyadeepdutta/tamperproof-users/internal/observability"
)

type ImportDatasetInput struct {
	Records   []domain.Record
	BatchSize int
}

type ImportDataset interface {
	Execute(ctx context.Context, in ImportDatasetInput) (domain.RunResult, error)
}

type importDataset struct {
	writer  domain.BatchWriter
	metrics *observability.Metrics
	tracer  trace.Tracer
	now     func() time.Time
}

// NewImportDataset returns the batch importer. metrics may be nil.
func NewImportDataset(writer domain.BatchWriter, metrics *observability.Metrics) ImportDataset {
	return &importDataset{
		writer:  writer,
		metrics: metrics,
		tracer:  observability.Tracer(),
		now:     time.Now,
	}
}

// Execute submits the records as sequential bulk inserts of at most BatchSize
// rows. A failed batch is recorded and skipped; every batch is attempted.
func (uc *importDataset) Execute(ctx context.Context, in ImportDatasetInput) (domain.RunResult, error) {
	if in.BatchSize < 1 {
		return domain.RunResult{}, ErrInvalidBatchSize
	}

	result := domain.RunResult{
		Total:     len(in.Records),
		StartedAt: uc.now().UTC(),
	}

	batches := domain.Partition(in.Records, in.BatchSize)
	result.Batches = len(batches)

	for i, batch := range batches {
		if err := ctx.Err(); err != nil {
			uc.recordFailure(ctx, &result, batch, err)
			continue
		}

		if err := uc.submit(ctx, i, batch); err != nil {
			uc.recordFailure(ctx, &result, batch, err)
			continue
		}

		result.Inserted += int64(batch.Len())
		uc.observe("ok", batch.Len())
	}

	result.FinishedAt = uc.now().UTC()
	observability.Logf(ctx, "import finished: total=%d inserted=%d batches=%d failed_batches=%d",
		result.Total, result.Inserted, result.Batches, len(result.Failed))

	return result, nil
}

func (uc *importDataset) submit(ctx context.Context, index int, batch domain.Batch) error {
	ctx, span := uc.tracer.Start(ctx, "import.batch", trace.WithAttributes(
		attribute.Int("import.batch.index", index),
		attribute.Int("import.batch.offset", batch.Offset),
		attribute.Int("import.batch.size", batch.Len()),
	))
	defer span.End()

	if _, err := uc.writer.InsertBatch(ctx, batch); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (uc *importDataset) recordFailure(ctx context.Context, result *domain.RunResult, batch domain.Batch, err error) {
	observability.Logf(ctx, "batch at offset %d (%d records) failed: %v", batch.Offset, batch.Len(), err)

	result.Failed = append(result.Failed, domain.FailedBatch{
		Offset:   batch.Offset,
		Length:   batch.Len(),
		Error:    err.Error(),
		Checksum: batch.Checksum(),
	})
	uc.observe("failed", 0)
}

func (uc *importDataset) observe(outcome string, inserted int) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.Batches.WithLabelValues(outcome).Inc()
	if inserted > 0 {
		uc.metrics.RecordsInserted.Add(float64(inserted))
	}
}
