package dataset

import "time"

type FailedBatch struct {
	Offset   int    `json:"offset"`
	Length   int    `json:"length"`
	Error    string `json:"error"`
	Checksum uint64 `json:"checksum"`
}

// RunResult summarizes one pass of the importer over a dataset.
type RunResult struct {
	Total      int           `json:"total"`
	Inserted   int64         `json:"inserted"`
	Batches    int           `json:"batches"`
	Failed     []FailedBatch `json:"failed_batches"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
}

func (r RunResult) FailedRecords() int {
	n := 0
	for _, f := range r.Failed {
		n += f.Length
	}
	return n
}

func (r RunResult) Succeeded() bool {
	return len(r.Failed) == 0
}

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusFailed    RunStatus = "failed"
)

// ImportRun is the persisted lifecycle of an HTTP-triggered import.
type ImportRun struct {
	ID           string
	SourcePath   string
	BatchSize    int
	Status       RunStatus
	Result       *RunResult
	ErrorMessage string
	StartedAt    time.Time
	FinishedAt   *time.Time
}

// VerifyReport is operator feedback from the post-import verification pass.
type VerifyReport struct {
	Count      int64    `json:"count"`
	CountError string   `json:"count_error,omitempty"`
	Sample     []Record `json:"-"`
	SampleSize int      `json:"sample_size"`
	SampleErr  string   `json:"sample_error,omitempty"`
}
