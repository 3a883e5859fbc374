package dataset_test

import (
	"context"
	"fmt"
	"sync"

	app "github.com/soumyadeepdutta/tamperproof-users/internal/application/dataset"
	domain "github.com/soumyadeepdutta/tamperproof-users/internal/domain/dataset"
)

func makeRecords(n int) []domain.Record {
	out := make([]domain.Record, n)
	for i := range out {
		rec := domain.NewRecord()
		rec.Set("application_id", domain.StringPtr(fmt.Sprintf("APP-%05d", i)))
		out[i] = rec
	}
	return out
}

type fakeWriter struct {
	mu       sync.Mutex
	batches  []domain.Batch
	failAt   map[int]error
	onInsert func()
}

func (f *fakeWriter) InsertBatch(ctx context.Context, batch domain.Batch) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.batches = append(f.batches, batch)
	if f.onInsert != nil {
		f.onInsert()
	}
	if err, ok := f.failAt[batch.Offset]; ok {
		return 0, err
	}
	return int64(batch.Len()), nil
}

type fakeCounter struct {
	count     int64
	countErr  error
	sample    []domain.Record
	sampleErr error
	gotLimit  int
}

func (f *fakeCounter) CountRecords(ctx context.Context) (int64, error) {
	return f.count, f.countErr
}

func (f *fakeCounter) SampleRecords(ctx context.Context, limit int) ([]domain.Record, error) {
	f.gotLimit = limit
	if f.sampleErr != nil {
		return nil, f.sampleErr
	}
	if len(f.sample) > limit {
		return f.sample[:limit], nil
	}
	return f.sample, nil
}

type fakeRunRepository struct {
	mu        sync.Mutex
	created   []domain.ImportRun
	completed map[string]domain.RunResult
	failed    map[string]string
	createErr error
	runs      map[string]*domain.ImportRun
	getErr    error
}

func newFakeRunRepository() *fakeRunRepository {
	return &fakeRunRepository{
		completed: map[string]domain.RunResult{},
		failed:    map[string]string{},
		runs:      map[string]*domain.ImportRun{},
	}
}

func (f *fakeRunRepository) Create(ctx context.Context, run domain.ImportRun) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, run)
	return nil
}

func (f *fakeRunRepository) Complete(ctx context.Context, id string, result domain.RunResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.completed[id] = result
	return nil
}

func (f *fakeRunRepository) Fail(ctx context.Context, id string, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.failed[id] = reason
	return nil
}

func (f *fakeRunRepository) GetByID(ctx context.Context, id string) (*domain.ImportRun, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	run, ok := f.runs[id]
	if !ok {
		return nil, domain.ErrImportRunNotFound
	}
	return run, nil
}

type fakeReader struct {
	records []domain.Record
	err     error
	gotPath string
}

func (f *fakeReader) Read(ctx context.Context, sourcePath string) ([]domain.Record, error) {
	f.gotPath = sourcePath
	return f.records, f.err
}

type fakeSchema struct {
	calls int
	err   error
}

func (f *fakeSchema) EnsureSchema(ctx context.Context) error {
	f.calls++
	return f.err
}

// blockingPipeline holds every run until release is closed.
type blockingPipeline struct {
	started chan app.PipelineInput
	release chan struct{}
	out     app.PipelineOutput
	err     error
}

func newBlockingPipeline() *blockingPipeline {
	return &blockingPipeline{
		started: make(chan app.PipelineInput, 1),
		release: make(chan struct{}),
	}
}

func (p *blockingPipeline) Run(ctx context.Context, in app.PipelineInput) (app.PipelineOutput, error) {
	p.started <- in
	<-p.release
	return p.out, p.err
}
