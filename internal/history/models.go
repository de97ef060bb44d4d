package history

import "time"

// Status is the lifecycle state of a recorded run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether a status will never change again.
func (s Status) Terminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusCancelled:
		return true
	default:
		return false
	}
}

// Run is one recorded transcode: the job summary, the exact command line,
// and how it ended.
type Run struct {
	ID           string
	SourcePath   string
	OutputPath   string
	Mode         string
	Accelerator  string
	StartSeconds float64
	EndSeconds   float64
	Command      string
	Status       Status
	Percent      int
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
