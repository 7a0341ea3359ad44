package jobs

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"pdf_eraser/pdf"
)

// Status is the lifecycle state of a Job.
type Status string

const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusWarning    Status = "warning"
	StatusError      Status = "error"
)

// Job is one request to remove the last page of Source.
type Job struct {
	ID           string       `json:"id"`
	Source       string       `json:"source"`
	TrimFilename bool         `json:"trim_filename"`
	Status       Status       `json:"status"`
	Outcome      *pdf.Outcome `json:"outcome,omitempty"`
	Result       *pdf.Result  `json:"result,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	FinishedAt   *time.Time   `json:"finished_at,omitempty"`
}

// Done reports whether the job reached a final state.
func (j *Job) Done() bool {
	switch j.Status {
	case StatusCompleted, StatusWarning, StatusError:
		return true
	}
	return false
}

// finish records the outcome and the matching final status.
func (j *Job) finish(res *pdf.Result, outcome pdf.Outcome) {
	switch outcome.Kind {
	case pdf.OutcomeInfo:
		j.Status = StatusCompleted
	case pdf.OutcomeWarning:
		j.Status = StatusWarning
	default:
		j.Status = StatusError
	}
	now := time.Now()
	j.Result = res
	j.Outcome = &outcome
	j.FinishedAt = &now
}

// newID returns a timestamp plus random suffix, unique enough for local jobs.
func newID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return fmt.Sprintf("%d_%s", time.Now().UnixNano(), hex.EncodeToString(b))
}
