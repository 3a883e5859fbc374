package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/soumyadeepdutta/tamperproof-users/internal/domain/dataset"
	"github.com/soumyadeepdutta/tamperproof-users/internal/infrastructure/db/models"
)

type ImportRunRepository struct {
	db *gorm.DB
}

func NewImportRunRepository(db *gorm.DB) *ImportRunRepository {
	return &ImportRunRepository{db: db}
}

func (r *ImportRunRepository) Create(ctx context.Context, run dataset.ImportRun) error {
	row := models.ImportRun{
		ID:         run.ID,
		SourcePath: run.SourcePath,
		BatchSize:  run.BatchSize,
		Status:     string(run.Status),
		StartedAt:  run.StartedAt,
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create import run: %w", err)
	}
	return nil
}

func (r *ImportRunRepository) Complete(ctx context.Context, id string, result dataset.RunResult) error {
	failed := result.Failed
	if failed == nil {
		failed = []dataset.FailedBatch{}
	}
	payload, err := json.Marshal(failed)
	if err != nil {
		return fmt.Errorf("encode failed batches: %w", err)
	}

	return r.update(ctx, id, map[string]any{
		"status":         string(dataset.RunStatusSucceeded),
		"total_records":  int64(result.Total),
		"inserted_count": result.Inserted,
		"batch_count":    result.Batches,
		"failed_batches": datatypes.JSON(payload),
		"finished_at":    result.FinishedAt,
	})
}

func (r *ImportRunRepository) Fail(ctx context.Context, id string, reason string) error {
	return r.update(ctx, id, map[string]any{
		"status":        string(dataset.RunStatusFailed),
		"error_message": reason,
		"finished_at":   time.Now().UTC(),
	})
}

func (r *ImportRunRepository) update(ctx context.Context, id string, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&models.ImportRun{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("update import run: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return dataset.ErrImportRunNotFound
	}
	return nil
}

func (r *ImportRunRepository) GetByID(ctx context.Context, id string) (*dataset.ImportRun, error) {
	var row models.ImportRun
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, dataset.ErrImportRunNotFound
		}
		return nil, fmt.Errorf("get import run: %w", err)
	}

	run := &dataset.ImportRun{
		ID:         row.ID,
		SourcePath: row.SourcePath,
		BatchSize:  row.BatchSize,
		Status:     dataset.RunStatus(row.Status),
		StartedAt:  row.StartedAt.UTC(),
		FinishedAt: row.FinishedAt,
	}
	if row.ErrorMessage != nil {
		run.ErrorMessage = *row.ErrorMessage
	}

	if run.Status == dataset.RunStatusSucceeded {
		result := &dataset.RunResult{
			Total:     int(row.TotalRecords),
			Inserted:  row.InsertedCount,
			Batches:   row.BatchCount,
			StartedAt: run.StartedAt,
		}
		if row.FinishedAt != nil {
			result.FinishedAt = row.FinishedAt.UTC()
		}
		if len(row.FailedBatches) > 0 {
			if err := json.Unmarshal(row.FailedBatches, &result.Failed); err != nil {
				return nil, fmt.Errorf("decode failed batches: %w", err)
			}
		}
		run.Result = result
	}

	return run, nil
}
