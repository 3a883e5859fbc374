package models

import (
	"time"

	"gorm.io/datatypes"
)

type ImportRun struct {
	ID            string `gorm:"type:varchar(36);primaryKey"`
	SourcePath    string `gorm:"type:text;not null"`
	BatchSize     int    `gorm:"not null"`
	Status        string `gorm:"type:varchar(16);not null;index"`
	TotalRecords  int64  `gorm:"not null;default:0"`
	InsertedCount int64  `gorm:"not null;default:0"`
	BatchCount    int    `gorm:"not null;default:0"`
	FailedBatches datatypes.JSON
	ErrorMessage  *string `gorm:"type:text"`
	StartedAt     time.Time
	FinishedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (ImportRun) TableName() string {
	return "import_runs"
}
