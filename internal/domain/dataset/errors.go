package dataset

import "errors"

var (
	ErrImportRunNotFound = errors.New("import run not found")
)
