package dataset

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/soumyadeepdutta/tamperproof-users/internal/domain/dataset"
)

type GetImportRunInput struct {
	ID string
}

type GetImportRunOutput struct {
	ID         string            `json:"id"`
	SourcePath string            `json:"source_path"`
	BatchSize  int               `json:"batch_size"`
	Status     string            `json:"status"`
	Result     *domain.RunResult `json:"result,omitempty"`
	Error      string            `json:"error,omitempty"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt *time.Time        `json:"finished_at,omitempty"`
}

type GetImportRun interface {
	Execute(ctx context.Context, in GetImportRunInput) (GetImportRunOutput, error)
}

type getImportRun struct {
	runs domain.RunRepository
}

func NewGetImportRun(runs domain.RunRepository) GetImportRun {
	return &getImportRun{runs: runs}
}

func (uc *getImportRun) Execute(ctx context.Context, in GetImportRunInput) (GetImportRunOutput, error) {
	run, err := uc.runs.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, domain.ErrImportRunNotFound) {
			return GetImportRunOutput{}, ErrImportRunNotFound
		}
		return GetImportRunOutput{}, fmt.Errorf("%w: %v", ErrGetImportRun, err)
	}

	return GetImportRunOutput{
		ID:         run.ID,
		SourcePath: run.SourcePath,
		BatchSize:  run.BatchSize,
		Status:     string(run.Status),
		Result:     run.Result,
		Error:      run.ErrorMessage,
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
	}, nil
}
