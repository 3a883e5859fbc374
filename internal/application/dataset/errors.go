package dataset

import "errors"

var (
	ErrInvalidBatchSize    = errors.New("batch size must be at least 1")
	ErrInvalidImportSource = errors.New("invalid import source")
	ErrImportInProgress    = errors.New("an import is already in progress")
	ErrStartImport         = errors.New("failed to start import")
	ErrImportRunNotFound   = errors.New("import run not found")
	ErrGetImportRun        = errors.New("failed to get import run")
)
