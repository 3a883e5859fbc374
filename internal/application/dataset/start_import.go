package dataset

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/soumyadeepdutta/tamperproof-users/internal/domain/dataset"
	"github.com/soumyadeepdutta/tamperproof-users/internal/observability"
)

const maxReasonLength = 1000

type StartImportInput struct {
	SourcePath string
	BatchSize  int
}

type StartImportOutput struct {
	RunID  string `json:"run_id"`
	Status string `json:"status"`
}

type StartImport interface {
	Execute(ctx context.Context, in StartImportInput) (StartImportOutput, error)
}

type pipelineRunner interface {
	Run(ctx context.Context, in PipelineInput) (PipelineOutput, error)
}

type ImportLauncherConfig struct {
	DefaultBatchSize int
	SampleSize       int
}

// ImportLauncher runs at most one import in the background and records its
// lifecycle in the run log.
type ImportLauncher struct {
	baseCtx  context.Context
	runs     domain.RunRepository
	pipeline pipelineRunner
	metrics  *observability.Metrics
	cfg      ImportLauncherConfig
	newID    func() string

	mu      sync.Mutex
	running bool
	wg      sync.WaitGroup
}

// NewImportLauncher binds background runs to ctx; cancelling it stops the
// remaining batches of an in-flight run.
func NewImportLauncher(ctx context.Context, runs domain.RunRepository, pipeline pipelineRunner, metrics *observability.Metrics, cfg ImportLauncherConfig) *ImportLauncher {
	if cfg.DefaultBatchSize <= 0 {
		cfg.DefaultBatchSize = 1000
	}

	return &ImportLauncher{
		baseCtx:  ctx,
		runs:     runs,
		pipeline: pipeline,
		metrics:  metrics,
		cfg:      cfg,
		newID:    uuid.NewString,
	}
}

func (l *ImportLauncher) Execute(ctx context.Context, in StartImportInput) (StartImportOutput, error) {
	sourcePath := strings.TrimSpace(in.SourcePath)
	ext := strings.ToLower(filepath.Ext(sourcePath))
	if sourcePath == "" || (ext != ".csv" && ext != ".json") {
		return StartImportOutput{}, ErrInvalidImportSource
	}

	batchSize := in.BatchSize
	if batchSize == 0 {
		batchSize = l.cfg.DefaultBatchSize
	}
	if batchSize < 1 {
		return StartImportOutput{}, ErrInvalidBatchSize
	}

	if !l.acquire() {
		return StartImportOutput{}, ErrImportInProgress
	}

	run := domain.ImportRun{
		ID:         l.newID(),
		SourcePath: sourcePath,
		BatchSize:  batchSize,
		Status:     domain.RunStatusRunning,
		StartedAt:  time.Now().UTC(),
	}
	if err := l.runs.Create(ctx, run); err != nil {
		l.release()
		return StartImportOutput{}, fmt.Errorf("%w: %v", ErrStartImport, err)
	}

	l.wg.Add(1)
	go l.process(run)

	return StartImportOutput{RunID: run.ID, Status: string(run.Status)}, nil
}

// Wait blocks until the in-flight run, if any, has been recorded.
func (l *ImportLauncher) Wait() {
	l.wg.Wait()
}

func (l *ImportLauncher) process(run domain.ImportRun) {
	defer l.wg.Done()
	defer l.release()

	ctx := l.baseCtx
	observability.Logf(ctx, "import run %s started: source=%s batch_size=%d", run.ID, run.SourcePath, run.BatchSize)

	out, err := l.pipeline.Run(ctx, PipelineInput{
		SourcePath: run.SourcePath,
		BatchSize:  run.BatchSize,
		SampleSize: l.cfg.SampleSize,
	})

	// The run log is written even after shutdown has cancelled the base context.
	recordCtx := context.WithoutCancel(ctx)
	if err != nil {
		observability.Logf(ctx, "import run %s failed: %v", run.ID, err)
		l.countRun(domain.RunStatusFailed)
		if failErr := l.runs.Fail(recordCtx, run.ID, truncateReason(err.Error())); failErr != nil {
			observability.Logf(ctx, "record failure of import run %s: %v", run.ID, failErr)
		}
		return
	}

	observability.Logf(ctx, "import run %s finished: inserted=%d/%d failed_batches=%d",
		run.ID, out.Result.Inserted, out.Result.Total, len(out.Result.Failed))
	l.countRun(domain.RunStatusSucceeded)
	if err := l.runs.Complete(recordCtx, run.ID, out.Result); err != nil {
		observability.Logf(ctx, "record completion of import run %s: %v", run.ID, err)
	}
}

func (l *ImportLauncher) acquire() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running {
		return false
	}
	l.running = true
	return true
}

func (l *ImportLauncher) release() {
	l.mu.Lock()
	l.running = false
	l.mu.Unlock()
}

func (l *ImportLauncher) countRun(status domain.RunStatus) {
	if l.metrics != nil {
		l.metrics.ImportRuns.WithLabelValues(string(status)).Inc()
	}
}

func truncateReason(reason string) string {
	reason = strings.TrimSpace(reason)
	if len(reason) <= maxReasonLength {
		return reason
	}
	return reason[:maxReasonLength]
}
