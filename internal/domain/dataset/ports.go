package dataset

import "context"

// BatchWriter submits one batch as a single bulk statement.
type BatchWriter interface {
	InsertBatch(ctx context.Context, batch Batch) (int64, error)
}

type RecordCounter interface {
	CountRecords(ctx context.Context) (int64, error)
	SampleRecords(ctx context.Context, limit int) ([]Record, error)
}

type RunRepository interface {
	Create(ctx context.Context, run ImportRun) error
	Complete(ctx context.Context, id string, result RunResult) error
	Fail(ctx context.Context, id string, reason string) error
	GetByID(ctx context.Context, id string) (*ImportRun, error)
}
