package jobs

import (
	"time"

	"github.com/buemura/warden/internal/scanner"
	"github.com/buemura/warden/pkg/types"
)

// JobStatus represents the current state of a scan job.
type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusRunning   JobStatus = "running"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// Job represents an async scan over a root directory.
type Job struct {
	ID          string            `json:"id"`
	Root        string            `json:"root"`
	Languages   []string          `json:"languages,omitempty"`
	Options     scanner.Options   `json:"-"`
	Status      JobStatus         `json:"status"`
	Result      *types.ScanResult `json:"result,omitempty"`
	Error       string            `json:"error,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	StartedAt   time.Time         `json:"started_at,omitempty"`
	CompletedAt time.Time         `json:"completed_at,omitempty"`
}

// FindingCount returns the number of findings in the job's result.
func (j *Job) FindingCount() int {
	if j.Result == nil {
		return 0
	}
	return len(j.Result.Findings)
}
